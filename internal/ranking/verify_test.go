package ranking

import (
	"testing"

	"github.com/afriquesports/factsheet/internal/model"
)

func lockedSheet(names ...string) *model.FactSheet {
	fs := model.New(model.Options{PostType: model.PostRanking})
	var refs []string
	for _, name := range names {
		ref := fs.AddEntity(model.Entity{Kind: model.KindPlayer, Name: name, Confidence: 1.0})
		refs = append(refs, ref)
	}
	fs.LockRanking(refs)
	return fs
}

func TestVerifyOrder_RespectedOrder(t *testing.T) {
	fs := lockedSheet("Pedri", "Jude Bellingham", "Eduardo Camavinga")
	content := `Voici le classement:

1. Pedri domine la saison.
2. **Jude Bellingham** reste impressionnant.
3. Camavinga complète le podium.`

	result := VerifyOrder(fs, content)
	if !result.Valid {
		t.Errorf("expected valid, got errors: %v", result.Errors)
	}
}

func TestVerifyOrder_SwappedRanks(t *testing.T) {
	fs := lockedSheet("Pedri", "Jude Bellingham")
	content := `1. Jude Bellingham
2. Pedri`

	result := VerifyOrder(fs, content)
	if result.Valid {
		t.Fatal("expected violation for swapped order")
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 rank errors, got %v", result.Errors)
	}
}

func TestVerifyOrder_PartialNameMatches(t *testing.T) {
	fs := lockedSheet("Jude Bellingham")
	content := "1. Bellingham mérite sa place."

	result := VerifyOrder(fs, content)
	if !result.Valid {
		t.Errorf("expected surname alone to verify, got %v", result.Errors)
	}
}

func TestVerifyOrder_ProseAfterName(t *testing.T) {
	// Articles rarely stop at the name; the rest of the sentence must
	// not defeat verification.
	fs := lockedSheet("Jude Bellingham", "Eduardo Camavinga")
	content := `1. Bellingham mérite sa place au sommet.
2. Camavinga complète le podium avec brio.`

	result := VerifyOrder(fs, content)
	if !result.Valid {
		t.Errorf("expected prose tails to verify, got %v", result.Errors)
	}
}

func TestVerifyOrder_WrongPlayerInProse(t *testing.T) {
	fs := lockedSheet("Jude Bellingham", "Pedri")
	content := `1. Pedri prend la tête du classement.
2. Bellingham suit de près.`

	result := VerifyOrder(fs, content)
	if result.Valid {
		t.Fatal("expected violation when prose names the wrong player")
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 rank errors, got %v", result.Errors)
	}
}

func TestVerifyOrder_NameParticlesDoNotMatchProse(t *testing.T) {
	// "de" appears in ordinary French prose; it must not verify
	// Kevin De Bruyne on its own.
	fs := lockedSheet("Kevin De Bruyne")
	content := "1. Pedri est le meilleur de la saison."

	result := VerifyOrder(fs, content)
	if result.Valid {
		t.Error("expected particle-only overlap to count as a violation")
	}
}

func TestVerifyOrder_HashAndBoldMarkers(t *testing.T) {
	fs := lockedSheet("Pedri", "Rodri")
	content := `#1 Pedri
**2. Rodri**`

	result := VerifyOrder(fs, content)
	if !result.Valid {
		t.Errorf("expected marker variants to parse, got %v", result.Errors)
	}
}

func TestVerifyOrder_ConflictingMentionsGoUnverified(t *testing.T) {
	fs := lockedSheet("Pedri", "Rodri")
	content := `1. Pedri
1. Rodri
2. Rodri`

	result := VerifyOrder(fs, content)
	if len(result.Unverified) != 1 || result.Unverified[0] != 1 {
		t.Errorf("expected rank 1 flagged unverified, got %v", result.Unverified)
	}
	if !result.Valid {
		t.Errorf("ambiguity must not count as a violation, got %v", result.Errors)
	}
}

func TestVerifyOrder_NoLockedRanking(t *testing.T) {
	fs := model.New(model.Options{PostType: model.PostNews})
	result := VerifyOrder(fs, "1. Anyone")
	if !result.Valid {
		t.Error("expected trivially valid without a locked ranking")
	}
}

func TestVerifyOrder_IgnoresOutOfRangeRanks(t *testing.T) {
	fs := lockedSheet("Pedri")
	content := `1. Pedri
7. Someone Else
2024. Not a rank`

	result := VerifyOrder(fs, content)
	if !result.Valid {
		t.Errorf("expected ranks beyond the list to be ignored, got %v", result.Errors)
	}
}
