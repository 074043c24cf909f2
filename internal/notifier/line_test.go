package notifier

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kojima2223-star/Fumotoppara/internal/availability"
	"github.com/kojima2223-star/Fumotoppara/internal/line"
)

func testClient(t *testing.T) *line.Client {
	t.Helper()
	client, err := line.NewClient("test-token")
	if err != nil {
		t.Fatalf("NewClient() unexpected error: %v", err)
	}
	return client
}

func testObservation() *availability.Observation {
	return availability.NewObservation(
		"キャンプ宿泊", "12/31",
		availability.Limited, availability.Full,
		"https://reserve.fumotoppara.net/reserved/reserved-calendar-list",
	)
}

func TestParseSendMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SendMode
		wantErr bool
	}{
		{"push", ModePush, false},
		{"broadcast", ModeBroadcast, false},
		{"multicast", ModeMulticast, false},
		{" Push ", ModePush, false},
		{"unicast", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSendMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSendMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSendMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLINENotifier_RecipientValidation(t *testing.T) {
	client := testClient(t)

	tests := []struct {
		name        string
		mode        SendMode
		pushTarget  string
		userIDs     []string
		wantMissing bool
	}{
		{"push with group id", ModePush, "G123", nil, false},
		{"push without target", ModePush, "", nil, true},
		{"broadcast needs nobody", ModeBroadcast, "", nil, false},
		{"multicast with ids", ModeMulticast, "", []string{"U1"}, false},
		{"multicast without ids", ModeMulticast, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLINENotifier(client, tt.mode, tt.pushTarget, tt.userIDs)
			if tt.wantMissing {
				if !errors.Is(err, ErrMissingRecipient) {
					t.Errorf("expected ErrMissingRecipient, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildMessages(t *testing.T) {
	client := testClient(t)
	obs := testObservation()

	t.Run("generated text only", func(t *testing.T) {
		n, err := NewLINENotifier(client, ModeBroadcast, "", nil)
		if err != nil {
			t.Fatalf("NewLINENotifier() error: %v", err)
		}
		msgs := n.buildMessages(obs)
		if len(msgs) != 1 {
			t.Fatalf("got %d messages, want 1", len(msgs))
		}
		text, _ := msgs[0]["text"].(string)
		if !strings.Contains(text, "キャンプ宿泊") {
			t.Errorf("generated text %q should mention the category", text)
		}
	})

	t.Run("message override", func(t *testing.T) {
		n, err := NewLINENotifier(client, ModeBroadcast, "", nil)
		if err != nil {
			t.Fatalf("NewLINENotifier() error: %v", err)
		}
		n.WithMessageOverride("カスタム通知")
		msgs := n.buildMessages(obs)
		if msgs[0]["text"] != "カスタム通知" {
			t.Errorf("override not applied: %v", msgs[0]["text"])
		}
	})

	t.Run("flex card appended", func(t *testing.T) {
		n, err := NewLINENotifier(client, ModeBroadcast, "", nil)
		if err != nil {
			t.Fatalf("NewLINENotifier() error: %v", err)
		}
		n.WithFlexCard()
		msgs := n.buildMessages(obs)
		if len(msgs) != 2 {
			t.Fatalf("got %d messages, want text + flex", len(msgs))
		}
		if msgs[1]["type"] != "flex" {
			t.Errorf("second message type = %v, want flex", msgs[1]["type"])
		}
	})
}

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := &DryRunNotifier{out: &buf}

	if err := n.Notify(testObservation()); err != nil {
		t.Fatalf("Notify() unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Dry run") {
		t.Errorf("dry-run output missing banner:\n%s", out)
	}
	if !strings.Contains(out, "12/31") {
		t.Errorf("dry-run output missing date label:\n%s", out)
	}
}
