package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidFormat(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"alice.smith@example.co.uk",
		"a+tag@sub.example.org",
		"x_1%y@example.io",
	}
	invalid := []string{
		"",
		"plain",
		"no-at.example.com",
		"@example.com",
		"alice@",
		"alice@example",
		"alice example@example.com",
	}

	for _, e := range valid {
		assert.True(t, validFormat(e), e)
	}
	for _, e := range invalid {
		assert.False(t, validFormat(e), e)
	}
}

func TestSplitAddress(t *testing.T) {
	local, domain, ok := splitAddress("Alice@Example.COM")
	assert.True(t, ok)
	assert.Equal(t, "Alice", local)
	assert.Equal(t, "example.com", domain)

	_, _, ok = splitAddress("a@b@c")
	assert.False(t, ok)
	_, _, ok = splitAddress("nobody")
	assert.False(t, ok)
}

func TestRoleAccounts(t *testing.T) {
	lists := DefaultLists()

	for _, local := range []string{"info", "admin", "support", "postmaster", "no-reply", "hr", "accounts"} {
		assert.True(t, lists.IsRoleAccount(local), local)
	}
	// Case-insensitive exact match, no substrings.
	assert.True(t, lists.IsRoleAccount("SALES"))
	assert.False(t, lists.IsRoleAccount("salesforce"))
	assert.False(t, lists.IsRoleAccount("jane.doe"))
}

func TestFreeProviders(t *testing.T) {
	lists := DefaultLists()

	assert.True(t, lists.IsFreeProvider("gmail.com"))
	assert.True(t, lists.IsFreeProvider("yandex.com"))
	assert.False(t, lists.IsFreeProvider("corp.example.com"))
}

func TestDisposableDomains(t *testing.T) {
	lists := DefaultLists()

	assert.True(t, lists.IsDisposable("mailinator.com"))
	assert.True(t, lists.IsDisposable("yopmail.com"))
	assert.False(t, lists.IsDisposable("example.com"))
}

func TestListsAreSwappable(t *testing.T) {
	lists := &Lists{
		DisposableDomains: map[string]bool{"blocked.example": true},
		FreeProviders:     map[string]bool{},
		RoleAccounts:      map[string]bool{},
	}

	assert.True(t, lists.IsDisposable("blocked.example"))
	assert.False(t, lists.IsDisposable("mailinator.com"))
	assert.False(t, lists.IsRoleAccount("info"))
}
