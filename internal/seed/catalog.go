// Package seed holds the sample course catalog and loads it into a catalog store.
package seed

import (
	"context"
	"fmt"
	"time"

	"coursetrack-backend-go/internal/models"

	"github.com/google/uuid"
)

type CatalogWriter interface {
	Reset(ctx context.Context) error
	CreateCourse(ctx context.Context, course *models.Course) error
	CreateVideo(ctx context.Context, video *models.Video) error
}

type courseSeed struct {
	name        string
	description string
	language    string
	imageURL    string
}

var sampleCourses = []courseSeed{
	{"Python Programming Basics", "Learn Python programming from scratch with hands-on examples", models.LanguageEnglish, "https://images.unsplash.com/photo-1526379095098-d400fd0bf935?w=400&h=300&fit=crop"},
	{"Web Development Fundamentals", "Master HTML, CSS, and JavaScript basics", models.LanguageEnglish, "https://images.unsplash.com/photo-1547658719-da2b51169166?w=400&h=300&fit=crop"},
	{"Tamil: தமிழில் Python", "தமிழில் Python நிரலாக்கம் கற்றுக்கொள்ளுங்கள்", models.LanguageTamil, "https://images.unsplash.com/photo-1515879218367-8466d910aaa4?w=400&h=300&fit=crop"},
	{"Data Science with Python", "Learn data analysis, visualization, and machine learning", models.LanguageEnglish, "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop"},
	{"React Development", "Build modern web applications with React", models.LanguageEnglish, "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=400&h=300&fit=crop"},
	{"Tamil: வலை மேம்பாடு", "தமிழில் வலைதள உருவாக்கம் கற்றுக்கொள்ளுங்கள்", models.LanguageTamil, "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=400&h=300&fit=crop"},
	{"Mobile App Development", "Create cross-platform mobile applications", models.LanguageEnglish, "https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=400&h=300&fit=crop"},
	{"Database Management", "Master SQL and database design principles", models.LanguageEnglish, "https://images.unsplash.com/photo-1544383835-bda2bc66a55d?w=400&h=300&fit=crop"},
}

type videoSeed struct {
	suffix   string
	url      string
	duration int
}

var sampleVideos = []videoSeed{
	{"Introduction", "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4", 180},
	{"Core Concepts", "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4", 240},
	{"Advanced Topics", "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4", 150},
}

// Result reports what Load inserted.
type Result struct {
	Courses int
	Videos  int
}

// Load replaces the catalog with the sample courses, three videos each.
func Load(ctx context.Context, store CatalogWriter, now time.Time) (Result, error) {
	if err := store.Reset(ctx); err != nil {
		return Result{}, fmt.Errorf("reset catalog: %w", err)
	}
	var res Result
	for i, sample := range sampleCourses {
		if !models.ValidLanguage(sample.language) {
			return res, fmt.Errorf("course %q: unsupported language %q", sample.name, sample.language)
		}
		course := models.Course{
			ID:          uuid.NewString(),
			Name:        sample.name,
			Description: sample.description,
			Language:    sample.language,
			ImageURL:    sample.imageURL,
			CreatedAt:   now.UTC().Add(time.Duration(i) * time.Millisecond),
		}
		if err := store.CreateCourse(ctx, &course); err != nil {
			return res, fmt.Errorf("course %q: %w", sample.name, err)
		}
		res.Courses++
		for order, v := range sampleVideos {
			video := models.Video{
				ID:       uuid.NewString(),
				CourseID: course.ID,
				Title:    course.Name + " - " + v.suffix,
				VideoURL: v.url,
				Duration: v.duration,
				Order:    order + 1,
			}
			if err := store.CreateVideo(ctx, &video); err != nil {
				return res, fmt.Errorf("video %q: %w", video.Title, err)
			}
			res.Videos++
		}
	}
	return res, nil
}
