package database

import "blogpessoal/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters for AutoMigrate: referenced tables first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Usuario{},
		&models.Tema{},
		&models.Postagem{},
	}
}
