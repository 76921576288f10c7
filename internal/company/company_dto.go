package company

import "time"

type CreateCompanyRequest struct {
	Name        string `json:"nombre" binding:"required"`
	NIT         string `json:"nit" binding:"required"`
	Address     string `json:"direccion"`
	Phone       string `json:"telefono"`
	Email       string `json:"correo" binding:"omitempty,email"`
	Description string `json:"descripcion"`
}

type UpdateCompanyRequest struct {
	Name        string `json:"nombre"`
	Address     string `json:"direccion"`
	Phone       string `json:"telefono"`
	Email       string `json:"correo" binding:"omitempty,email"`
	Description string `json:"descripcion"`
}

type CompanyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nombre"`
	NIT         string    `json:"nit"`
	OwnerID     int64     `json:"owner_id"`
	Address     string    `json:"direccion"`
	Phone       string    `json:"telefono"`
	Email       string    `json:"correo"`
	Description string    `json:"descripcion"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
}
