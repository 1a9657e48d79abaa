package rag

import "testing"

func TestDetectLanguage(t *testing.T) {
	fr := DetectLanguage("Quelles sont les conditions de validité d'un contrat de vente selon le code civil français ?")
	if !fr.IsFrench || !fr.French() {
		t.Fatalf("expected French, got %+v", fr)
	}

	if got := DetectLanguage("   "); !got.French() {
		t.Fatalf("expected blank text to be treated as unknown, got %+v", got)
	}
}
