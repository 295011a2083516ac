package domain

import "golang.org/x/crypto/bcrypt"

func init() {
	pinHashCost = bcrypt.MinCost
}
