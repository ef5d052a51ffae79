// Package models contains data structures for the blog's domain models.
package models

// Usuario is a registered account. Usuario holds the login identifier (an e-mail).
type Usuario struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Nome     string     `gorm:"size:255;not null" json:"nome"`
	Usuario  string     `gorm:"size:255;not null;uniqueIndex" json:"usuario"`
	Senha    string     `gorm:"size:255;not null" json:"-"`
	Foto     string     `gorm:"size:5000" json:"foto"`
	Postagem []Postagem `gorm:"foreignKey:UsuarioID;constraint:OnDelete:SET NULL" json:"postagem,omitempty"`
}

// TableName returns the database table name for Usuario.
func (Usuario) TableName() string {
	return "tb_usuarios"
}

// UsuarioLogin is the login request and response body.
type UsuarioLogin struct {
	ID      uint   `json:"id"`
	Nome    string `json:"nome"`
	Usuario string `json:"usuario"`
	Senha   string `json:"senha,omitempty"`
	Foto    string `json:"foto"`
	Token   string `json:"token"`
}
