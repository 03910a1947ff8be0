package security

import "golang.org/x/crypto/bcrypt"

var cost = bcrypt.DefaultCost

// SetCost changes the bcrypt work factor used by Hash. Values outside the
// range bcrypt accepts are ignored.
func SetCost(c int) {
	if c >= bcrypt.MinCost && c <= bcrypt.MaxCost {
		cost = c
	}
}

func Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
