package store

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"mistica/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int { return &v }

// Seed loads the sample catalog, coupons and demo account the storefront
// ships with.
func (m *Memory) Seed() {
	for _, c := range []models.Category{
		{Name: "Velas", Description: "Velas aromáticas artesanales"},
		{Name: "Jabones", Description: "Jabones naturales hechos a mano"},
		{Name: "Libretas", Description: "Libretas artesanales de cuero"},
		{Name: "Inciensos", Description: "Inciensos aromáticos para meditación"},
	} {
		m.mu.Lock()
		now := time.Now()
		c.ID = m.allocID()
		c.CreatedAt = now
		c.UpdatedAt = now
		m.categories[c.ID] = c
		m.mu.Unlock()
	}

	products := []models.Product{
		{
			CategoryID: 1, Name: "Vela Aromática Lavanda",
			Description: "Relajante aroma de lavanda natural",
			Price:       dec("15.00"), Stock: 50,
			Recipe:            "Cera de soja natural, aceite esencial de lavanda búlgara, mecha de algodón orgánico",
			MagicalProperties: "La lavanda es conocida por sus propiedades calmantes y purificadoras. Ideal para rituales de relajación.",
		},
		{
			CategoryID: 2, Name: "Jabón Artesanal Miel",
			Description: "Con ingredientes naturales y miel pura",
			Price:       dec("12.00"), Stock: 30,
			Recipe:            "Aceite de coco, aceite de oliva, miel orgánica, manteca de karité",
			MagicalProperties: "La miel atrae la abundancia y dulzura a tu vida.",
		},
		{
			CategoryID: 3, Name: "Libreta Místico Dreams",
			Description: "Cuero artesanal con páginas recicladas",
			Price:       dec("45.00"), Stock: 20,
			Recipe:            "Cuero genuino, papel reciclado, hilo encerado",
			MagicalProperties: "Perfecta para escribir tus intenciones y manifestaciones.",
		},
		{
			CategoryID: 4, Name: "Set Inciensos Chakras",
			Description: "7 aromas para equilibrar tus chakras",
			Price:       dec("28.00"), Stock: 25,
			Recipe:            "Resinas naturales, aceites esenciales específicos para cada chakra",
			MagicalProperties: "Ayuda a equilibrar y alinear los siete chakras principales.",
		},
	}
	galleries := []models.ProductGallery{
		{ImageURL: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=300", AltText: "Vela Aromática Lavanda"},
		{ImageURL: "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400&h=300", AltText: "Jabón Artesanal Miel"},
		{ImageURL: "https://images.unsplash.com/photo-1531346878377-a5be20888e57?w=400&h=300", AltText: "Libreta Místico Dreams"},
		{ImageURL: "https://images.unsplash.com/photo-1602607213103-7a56a65ecf35?w=400&h=300", AltText: "Set Inciensos Chakras"},
	}
	for i, p := range products {
		created := m.CreateProduct(p)
		g := galleries[i]
		g.ProductID = created.ID
		m.mu.Lock()
		g.ID = m.allocID()
		g.CreatedAt = time.Now()
		m.galleries[g.ID] = g
		m.mu.Unlock()
	}

	now := time.Now()
	in30 := now.Add(30 * 24 * time.Hour)
	in60 := now.Add(60 * 24 * time.Hour)
	m.CreateCoupon(models.Coupon{
		Code:          "BIENVENIDO10",
		Name:          "Bienvenida 10% descuento",
		Description:   "10% de descuento para nuevos clientes",
		Type:          models.CouponTypePercentage,
		Value:         dec("10.00"),
		MinimumAmount: decPtr("50.00"),
		UsageLimit:    intPtr(100),
		UsedCount:     15,
		IsActive:      true,
		ValidFrom:     now,
		ValidUntil:    &in30,
	})
	m.CreateCoupon(models.Coupon{
		Code:          "VERANO25",
		Name:          "Descuento de Verano",
		Description:   "25% de descuento en productos seleccionados",
		Type:          models.CouponTypePercentage,
		Value:         dec("25.00"),
		MinimumAmount: decPtr("100.00"),
		MaxDiscount:   decPtr("50.00"),
		UsageLimit:    intPtr(50),
		UsedCount:     8,
		IsActive:      true,
		ValidFrom:     now,
		ValidUntil:    &in60,
	})

	hash, err := bcrypt.GenerateFromPassword([]byte("contraseña"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	m.CreateUser(models.User{
		Name:         "Cliente Demo",
		Email:        "demo@mistica.mx",
		PasswordHash: string(hash),
	})
}
