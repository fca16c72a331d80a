package model

// User is the account record stored in the credential table, keyed by email.
type User struct {
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"password"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// UserInfo is the public view of a user returned after verification.
// It never carries the password hash.
type UserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
