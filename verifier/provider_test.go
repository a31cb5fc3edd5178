package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintProvider(t *testing.T) {
	tests := []struct {
		name     string
		hosts    []string
		expected Provider
	}{
		{"google workspace", []string{"aspmx.l.google.com", "alt1.aspmx.l.google.com"}, ProviderGoogleWorkspace},
		{"googlemail", []string{"gmail-smtp-in.l.googlemail.com"}, ProviderGoogleWorkspace},
		{"microsoft365", []string{"corp-example-com.mail.protection.outlook.com"}, ProviderMicrosoft365},
		{"office365", []string{"mx1.office365.us"}, ProviderMicrosoft365},
		{"zoho", []string{"mx.zoho.com", "mx2.zoho.com"}, ProviderZoho},
		{"protonmail", []string{"mail.protonmail.ch"}, ProviderProtonMail},
		{"yahoo consumer", []string{"mta5.am0.yahoodns.net", "mx-eu.mail.am0.yahoo.com"}, ProviderConsumer},
		{"hotmail consumer", []string{"hotmail-com.olc.protection.hotmail.example"}, ProviderConsumer},
		{"unknown corporate", []string{"mail.initech.example"}, ProviderCorporate},
		{"empty", nil, ProviderCorporate},
		{"case insensitive", []string{"ASPMX.L.GOOGLE.COM"}, ProviderGoogleWorkspace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FingerprintProvider(tt.hosts))
		})
	}
}
