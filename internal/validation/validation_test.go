package validation

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Correct-Horse9battery", false},
		{"too short", "Ab1!short", true},
		{"missing upper", "lowercase-only-99!", true},
		{"missing lower", "UPPERCASE-ONLY-99!", true},
		{"missing digit", "No-Digits-Here-Ever!", true},
		{"missing special", "NoSpecials99Characters", true},
		{"over bcrypt limit", "Aa1!" + string(make([]byte, 80)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{"2026-03-01", false},
		{"2028-02-29", false},
		{"2026-02-30", true},
		{"2026-3-1", true},
		{"03-01-2026", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateDate(tt.date)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
		}
	}
}

func TestValidateClockTime(t *testing.T) {
	tests := []struct {
		clock   string
		wantErr bool
	}{
		{"00:00", false},
		{"23:59", false},
		{"09:05", false},
		{"24:00", true}, // sentinel is server-side only
		{"9:05", true},
		{"12:60", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateClockTime(tt.clock)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateClockTime(%q) error = %v, wantErr %v", tt.clock, err, tt.wantErr)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"member@example.com", false},
		{"", true},
		{"not-an-email", true},
	}

	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
		}
	}
}
