package company

import "time"

type Company struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"nombre"`
	NIT         string    `gorm:"size:64;not null;uniqueIndex:uq_company_nit" json:"nit"`
	OwnerID     int64     `gorm:"not null;index;constraint:OnDelete:RESTRICT" json:"owner_id"`
	Address     string    `gorm:"size:255" json:"direccion"`
	Phone       string    `gorm:"size:32" json:"telefono"`
	Email       string    `gorm:"size:255" json:"correo"`
	Description string    `gorm:"type:text" json:"descripcion"`
	LogoURL     string    `gorm:"size:512" json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "empresas"
}
