package checker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const registeredWhois = `Domain Name: EXAMPLE.COM
Registry Domain ID: 2336799_DOMAIN_COM-VRSN
Registrar WHOIS Server: whois.iana.org
Updated Date: 2024-08-14T07:01:34Z
Creation Date: 1995-08-14T04:00:00Z
Registry Expiry Date: 2030-08-13T04:00:00Z
Registrar: RESERVED-Internet Assigned Numbers Authority
Name Server: A.IANA-SERVERS.NET
Name Server: B.IANA-SERVERS.NET
Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited
DNSSEC: signedDelegation
`

func TestClassifyRegistered(t *testing.T) {
	state, _ := classify(registeredWhois)
	assert.Equal(t, StateRegistered, state)
}

func TestClassifyAvailable(t *testing.T) {
	raws := []string{
		"No match for \"SOME-FREE-DOMAIN.COM\".\r\n>>> Last update of whois database <<<",
		"Domain not found.",
		"Status: free",
	}
	for _, raw := range raws {
		state, expiry := classify(raw)
		assert.Equal(t, StateAvailable, state, raw)
		assert.True(t, expiry.IsZero())
	}
}

func TestClassifyAmbiguous(t *testing.T) {
	state, _ := classify("something went sideways, please retry")
	assert.Equal(t, StateUnknown, state)
}

func TestParseWhoisDate(t *testing.T) {
	cases := map[string]time.Time{
		"2030-08-13T04:00:00Z": time.Date(2030, 8, 13, 4, 0, 0, 0, time.UTC),
		"2030-08-13":           time.Date(2030, 8, 13, 0, 0, 0, 0, time.UTC),
		"13-Aug-2030":          time.Date(2030, 8, 13, 0, 0, 0, 0, time.UTC),
		"not a date":           {},
		"":                     {},
	}
	for value, expected := range cases {
		assert.Equal(t, expected, parseWhoisDate(value), value)
	}
}
