package user

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID          string    `json:"id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	Name        string    `json:"name" bson:"name"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Role        string    `json:"role" bson:"role"`
	Password    string    `json:"password,omitempty" bson:"password"`
	Verified    bool      `json:"verified" bson:"verified"`
	VerifyToken string    `json:"-" bson:"verifyToken,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
