// Command seed fills the database with demo usuarios, temas and postagens.
package main

import (
	"context"
	"flag"
	"log"

	"blogpessoal/internal/config"
	"blogpessoal/internal/database"
	"blogpessoal/internal/seed"
)

func main() {
	numUsuarios := flag.Int("usuarios", 10, "Number of usuarios to create")
	numPostagens := flag.Int("postagens", 50, "Number of postagens to create")
	shouldClean := flag.Bool("clean", false, "Remove existing data before seeding")
	temasOnly := flag.Bool("temas-only", false, "Only ensure the default temas")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close() }()

	s := seed.NewSeeder(db, seed.Options{
		NumUsuarios:  *numUsuarios,
		NumPostagens: *numPostagens,
		ShouldClean:  *shouldClean,
	})

	if *temasOnly {
		temas, err := s.EnsureDefaultTemas(ctx)
		if err != nil {
			log.Fatalf("Tema seeding failed: %v", err)
		}
		log.Printf("%d default temas available", len(temas))
		return
	}

	if err := s.Populate(ctx); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("All done. Every seeded usuario has the password: %s", seed.DefaultSenha)
}
