package elevenlabs

import (
	"fmt"
	"strings"
	"testing"
)

func TestAPIKeyRedaction(t *testing.T) {
	key := NewAPIKey("sk-super-secret")

	for _, rendered := range []string{
		key.String(),
		fmt.Sprintf("%v", key),
		fmt.Sprintf("%+v", key),
		fmt.Sprintf("%#v", key),
		fmt.Sprintf("%s", key),
	} {
		if strings.Contains(rendered, "super-secret") {
			t.Errorf("secret leaked in rendering %q", rendered)
		}
		if rendered != "ApiKey(****)" {
			t.Errorf("rendering = %q, want %q", rendered, "ApiKey(****)")
		}
	}
}

func TestAPIKeyReveal(t *testing.T) {
	key := NewAPIKey("sk-super-secret")
	if key.Reveal() != "sk-super-secret" {
		t.Errorf("Reveal() = %q, want original secret", key.Reveal())
	}
}

func TestAPIKeyIsZero(t *testing.T) {
	if !NewAPIKey("").IsZero() {
		t.Error("empty key should be zero")
	}
	if NewAPIKey("k").IsZero() {
		t.Error("non-empty key should not be zero")
	}
}
