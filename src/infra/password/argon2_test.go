package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hasher := NewArgon2Hasher()

	hash, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash equals the plaintext")
	}

	ok, err := hasher.Verify(hash, "s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ok {
		t.Error("expected the right password to verify")
	}

	ok, err = hasher.Verify(hash, "wrong")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Error("expected the wrong password to fail")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	hasher := NewArgon2Hasher()

	a, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if a == b {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher()
	if _, err := hasher.Verify("not-a-phc-string", "s3cret"); err == nil {
		t.Error("expected an error for a malformed hash")
	}
}
