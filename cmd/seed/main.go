// Command seed fills an empty store with demo institutions, faculties,
// courses, companies, users and admissions for local development.
package main

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/database"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/logger"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
)

type seedInstitution struct {
	model.Institution
	Faculties map[string][]string
}

var institutions = []seedInstitution{
	{
		Institution: model.Institution{Name: "National University of Lesotho", Location: "Roma", Type: "University"},
		Faculties: map[string][]string{
			"Science and Technology": {"BSc Computer Science", "BSc Mathematics", "BSc Physics"},
			"Humanities":             {"BA English", "BA History"},
		},
	},
	{
		Institution: model.Institution{Name: "Limkokwing University", Location: "Maseru", Type: "University"},
		Faculties: map[string][]string{
			"Design Innovation": {"BA Graphic Design", "BA Fashion Design"},
			"ICT":               {"BSc Software Engineering", "Diploma in IT"},
		},
	},
	{
		Institution: model.Institution{Name: "Lerotholi Polytechnic", Location: "Maseru", Type: "Polytechnic"},
		Faculties: map[string][]string{
			"Engineering": {"Diploma in Civil Engineering", "Diploma in Electrical Engineering"},
		},
	},
}

var companies = []map[string]any{
	{"name": "Maluti Tech", "email": "hr@malutitech.example", "approved": false, "status": string(model.CompanyStatusPending)},
	{"name": "Sehlabathebe Consulting", "email": "jobs@sehla.example", "approved": true, "status": string(model.CompanyStatusApproved)},
	{"name": "Orange Basotho", "email": "careers@orange.example", "approved": false, "status": string(model.CompanyStatusPending)},
}

var users = []map[string]any{
	{"name": "Lerato Mokoena", "email": "lerato@student.example", "role": "student"},
	{"name": "Thabo Nkosi", "email": "thabo@student.example", "role": "student"},
	{"name": "Palesa Molefe", "email": "palesa@institute.example", "role": "institute"},
}

var admissions = []map[string]any{
	{"title": "2027 Undergraduate Intake", "status": "open", "published": false},
	{"title": "2027 Diploma Intake", "status": "open", "published": false},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var app *firebase.App
	if cfg.StoreDriver == config.StoreFirestore {
		var err error
		app, err = database.NewFirebaseApp(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Firebase")
		}
	}

	store, err := database.NewStore(ctx, cfg, app, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer store.Close()

	if n, err := store.Count(ctx, config.Collection.Institutions); err != nil {
		log.Fatal().Err(err).Msg("Failed to inspect store")
	} else if n > 0 {
		fmt.Printf("Store already has %d institutions, nothing to do\n", n)
		return
	}

	institutionRepo := repository.NewInstitutionRepository(store)
	facultyRepo := repository.NewFacultyRepository(store)

	fmt.Println("=== Seeding Career Guidance Data ===")

	for _, seed := range institutions {
		instID, err := institutionRepo.Create(ctx, &seed.Institution)
		if err != nil {
			log.Fatal().Err(err).Str("name", seed.Name).Msg("Failed to create institution")
		}
		fmt.Printf("Institution %s (%s)\n", seed.Name, instID)

		for facultyName, courses := range seed.Faculties {
			facultyID, err := facultyRepo.Create(ctx, instID, facultyName)
			if err != nil {
				log.Fatal().Err(err).Str("name", facultyName).Msg("Failed to create faculty")
			}
			for _, courseName := range courses {
				if _, err := facultyRepo.AddCourse(ctx, facultyID, courseName); err != nil {
					log.Fatal().Err(err).Str("name", courseName).Msg("Failed to add course")
				}
			}
			fmt.Printf("  Faculty %s with %d courses\n", facultyName, len(courses))
		}
	}

	addAll(ctx, store, config.Collection.Companies, companies)
	addAll(ctx, store, config.Collection.Users, users)
	addAll(ctx, store, config.Collection.Admissions, admissions)

	fmt.Println("Seeding complete")
}

func addAll(ctx context.Context, store docstore.Store, collection string, docs []map[string]any) {
	for _, doc := range docs {
		doc["createdAt"] = docstore.ServerTimestamp
		if _, err := store.Add(ctx, collection, doc); err != nil {
			panic(fmt.Errorf("seed %s: %w", collection, err))
		}
	}
	fmt.Printf("Added %d %s\n", len(docs), collection)
}
