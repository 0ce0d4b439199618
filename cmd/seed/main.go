package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"coderr/internal/database"
	"coderr/internal/domain"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "coderr.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM offer_details")
	db.Exec("DELETE FROM offers")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Username:     "admin",
		Email:        "admin@coderr.dev",
		PasswordHash: string(adminHash),
		IsStaff:      true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin / admin123")

	customers := []domain.User{}
	customerNames := []string{"alice", "bob", "carla"}
	for i, name := range customerNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		u := domain.User{
			Username:     name,
			Email:        fmt.Sprintf("%s@mail.dev", name),
			PasswordHash: string(hash),
		}
		db.Create(&u)
		db.Create(&domain.Profile{
			UserID:    u.ID,
			Type:      domain.ProfileTypeCustomer,
			FirstName: fmt.Sprintf("Customer %d", i+1),
		})
		customers = append(customers, u)
	}

	businesses := []domain.User{}
	businessNames := []string{"webworks", "pixelforge", "codesmith"}
	for i, name := range businessNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("business123"), bcrypt.DefaultCost)
		u := domain.User{
			Username:     name,
			Email:        fmt.Sprintf("%s@agency.dev", name),
			PasswordHash: string(hash),
		}
		db.Create(&u)
		db.Create(&domain.Profile{
			UserID:      u.ID,
			Type:        domain.ProfileTypeBusiness,
			FirstName:   fmt.Sprintf("Business %d", i+1),
			Location:    "Berlin",
			Tel:         fmt.Sprintf("+49 30 123 45%02d", i+10),
			Description: "Full service web agency",
		})
		businesses = append(businesses, u)
	}

	// ================== OFFERS ==================
	log.Println("Creating offers...")
	offerTitles := []string{"Website Design", "Logo Package", "SEO Audit", "Landing Page", "Online Shop"}
	offers := make([]domain.Offer, 0, len(offerTitles))
	for i, title := range offerTitles {
		owner := businesses[i%len(businesses)]
		offer := domain.Offer{
			UserID:      owner.ID,
			Title:       title,
			Description: fmt.Sprintf("Professional %s for your project", title),
			Details: []domain.OfferDetail{
				{
					Title:              title + " Basic",
					Revisions:          1 + rand.Intn(2),
					DeliveryTimeInDays: 3 + rand.Intn(4),
					Price:              100 + float64(rand.Intn(100)),
					Features:           []string{"1 concept", "Source files"},
					OfferType:          domain.OfferTypeBasic,
				},
				{
					Title:              title + " Standard",
					Revisions:          3 + rand.Intn(3),
					DeliveryTimeInDays: 7 + rand.Intn(4),
					Price:              300 + float64(rand.Intn(200)),
					Features:           []string{"3 concepts", "Source files", "Priority support"},
					OfferType:          domain.OfferTypeStandard,
				},
				{
					Title:              title + " Premium",
					Revisions:          domain.UnlimitedRevisions,
					DeliveryTimeInDays: 14,
					Price:              800 + float64(rand.Intn(400)),
					Features:           []string{"Unlimited concepts", "Source files", "Priority support", "Express delivery"},
					OfferType:          domain.OfferTypePremium,
				},
			},
		}
		db.Create(&offer)
		offers = append(offers, offer)
	}

	// ================== ORDERS ==================
	log.Println("Creating orders...")
	statuses := []domain.OrderStatus{domain.OrderInProgress, domain.OrderCompleted, domain.OrderCancelled}
	for i := 0; i < 8; i++ {
		offer := offers[rand.Intn(len(offers))]
		customer := customers[rand.Intn(len(customers))]
		detail := offer.Details[rand.Intn(len(offer.Details))]

		order := domain.Order{
			CustomerUserID:     customer.ID,
			BusinessUserID:     offer.UserID,
			Title:              offer.Title,
			Revisions:          detail.Revisions,
			DeliveryTimeInDays: detail.DeliveryTimeInDays,
			Price:              detail.Price,
			Features:           append([]string(nil), detail.Features...),
			OfferType:          detail.OfferType,
			Status:             statuses[rand.Intn(len(statuses))],
		}
		db.Create(&order)
	}

	// ================== REVIEWS ==================
	// One review per (reviewer, business) pair, matching the unique index.
	log.Println("Creating reviews...")
	comments := []string{
		"Great work, delivered on time.",
		"Solid communication and clean result.",
		"Would order again.",
	}
	for i, customer := range customers {
		business := businesses[i%len(businesses)]
		review := domain.Review{
			BusinessUserID: business.ID,
			ReviewerID:     customer.ID,
			Rating:         3 + rand.Intn(3),
			Description:    comments[i%len(comments)],
		}
		db.Create(&review)
	}

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin: admin / admin123")
	log.Println("Customers: alice, bob, carla / customer123")
	log.Println("Businesses: webworks, pixelforge, codesmith / business123")
}
