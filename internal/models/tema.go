package models

// Tema groups postagens by subject. Removing a Tema removes its postagens.
type Tema struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Descricao string     `gorm:"size:255;not null" json:"descricao"`
	Postagem  []Postagem `gorm:"foreignKey:TemaID;constraint:OnDelete:CASCADE" json:"postagem,omitempty"`
}

// TableName returns the database table name for Tema.
func (Tema) TableName() string {
	return "tb_temas"
}
