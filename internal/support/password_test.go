package support

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Fatal("correct password should verify")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Fatal("wrong password must not verify")
	}
}
