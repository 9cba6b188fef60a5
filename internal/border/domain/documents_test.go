package domain

import "testing"

func TestIsVaccinationRequirement(t *testing.T) {
	tests := []struct {
		doc  string
		want bool
	}{
		{"measles_vaccination", true},
		{"yellow_fever_vaccination", true},
		{DocVaccinationCert, false}, // the certificate itself is not a per-disease requirement
		{DocPassport, false},
		{DocIDCard, false},
	}
	for _, tt := range tests {
		if got := IsVaccinationRequirement(tt.doc); got != tt.want {
			t.Errorf("IsVaccinationRequirement(%q) = %v, want %v", tt.doc, got, tt.want)
		}
	}
}

func TestDiseaseFromRequirement(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{"measles_vaccination", "measles"},
		{"yellow_fever_vaccination", "yellow fever"},
		{"polio_vaccination", "polio"},
	}
	for _, tt := range tests {
		if got := DiseaseFromRequirement(tt.doc); got != tt.want {
			t.Errorf("DiseaseFromRequirement(%q) = %q, want %q", tt.doc, got, tt.want)
		}
	}
}

func TestDisplayDocumentName(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{DocIDCard, "ID card"},
		{DocPassport, "passport"},
		{DocVaccinationCert, "certificate of vaccination"},
		{DocAccessPermit, "access permit"},
		{DocAsylumGrant, "grant of asylum"},
		{"measles_vaccination", "vaccination"},
		{"yellow_fever_vaccination", "vaccination"},
	}
	for _, tt := range tests {
		if got := DisplayDocumentName(tt.doc); got != tt.want {
			t.Errorf("DisplayDocumentName(%q) = %q, want %q", tt.doc, got, tt.want)
		}
	}
}

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ID card", "ID_card"},
		{"passport", "passport"},
		{" certificate of vaccination ", "certificate_of_vaccination"},
	}
	for _, tt := range tests {
		if got := DocumentID(tt.name); got != tt.want {
			t.Errorf("DocumentID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
