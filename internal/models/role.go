package models

type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"nombre"`

	Users []User `gorm:"many2many:user_roles" json:"-"`
}
