package models

import "time"

// Postagem is a blog post. Data is maintained by GORM on every insert and update.
type Postagem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Titulo    string    `gorm:"size:100;not null" json:"titulo"`
	Texto     string    `gorm:"size:1000;not null" json:"texto"`
	Data      time.Time `gorm:"autoUpdateTime" json:"data"`
	TemaID    uint      `gorm:"not null;index" json:"-"`
	Tema      *Tema     `gorm:"foreignKey:TemaID" json:"tema,omitempty"`
	UsuarioID *uint     `gorm:"index" json:"-"`
	Usuario   *Usuario  `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

// TableName returns the database table name for Postagem.
func (Postagem) TableName() string {
	return "tb_postagens"
}
