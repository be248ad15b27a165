package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

var (
	testNamespace = Namespace{0x6d, 0x69, 0x73, 0x74}
	authority     = ledgerDomain.Identity{0xa0}
	depositor     = ledgerDomain.Identity{0xd0}
	nonce         = [NonceSize]byte{1, 2, 3, 4, 5}
)

func authorityIs(id ledgerDomain.Identity) AuthorityFunc {
	return func() (ledgerDomain.Identity, error) { return id, nil }
}

func TestCheck(t *testing.T) {
	authorityID := testNamespace.AuthorityID(nonce)
	selfID := testNamespace.SelfAccessID(depositor, nonce)
	require.Len(t, authorityID, 37)
	require.Len(t, selfID, 69)

	otherNamespace := Namespace{0xff}
	wrongPrefix := otherNamespace.AuthorityID(nonce)

	tests := []struct {
		name      string
		id        []byte
		requester ledgerDomain.Identity
		wantErr   error
	}{
		{"AuthorityFormat_Authority", authorityID, authority, nil},
		{"AuthorityFormat_OtherRequester", authorityID, depositor, ErrAccessDenied},
		{"SelfAccess_Owner", selfID, depositor, nil},
		{"SelfAccess_Authority", selfID, authority, ErrAccessDenied},
		{"WrongNamespace", wrongPrefix, authority, ErrInvalidNamespace},
		{"ShorterThanNamespace", testNamespace[:10], authority, ErrInvalidNamespace},
		{"Empty", nil, authority, ErrInvalidNamespace},
		{"NamespaceOnly", testNamespace[:], authority, ErrInvalidIDLength},
		{"Length38", append(append([]byte{}, authorityID...), 0), authority, ErrInvalidIDLength},
		{"Length68", selfID[:68], depositor, ErrInvalidIDLength},
		{"Length70", append(append([]byte{}, selfID...), 0), depositor, ErrInvalidIDLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(testNamespace, tt.id, tt.requester, authorityIs(authority))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheck_SelfAccessDoesNotReadAuthority(t *testing.T) {
	called := false
	lookup := func() (ledgerDomain.Identity, error) {
		called = true
		return authority, nil
	}

	err := Check(testNamespace, testNamespace.SelfAccessID(depositor, nonce), depositor, lookup)

	assert.NoError(t, err)
	assert.False(t, called)
}

func TestCheck_ZeroAuthorityMatchesNobody(t *testing.T) {
	zero := ledgerDomain.Identity{}
	err := Check(testNamespace, testNamespace.AuthorityID(nonce), zero, authorityIs(zero))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCheck_AuthorityLookupError(t *testing.T) {
	boom := errors.New("boom")
	err := Check(testNamespace, testNamespace.AuthorityID(nonce), authority, func() (ledgerDomain.Identity, error) {
		return ledgerDomain.Identity{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestCheck_FollowsRotation(t *testing.T) {
	id := testNamespace.AuthorityID(nonce)
	rotated := ledgerDomain.Identity{0xb0}

	assert.NoError(t, Check(testNamespace, id, authority, authorityIs(authority)))
	assert.ErrorIs(t, Check(testNamespace, id, authority, authorityIs(rotated)), ErrAccessDenied)
	assert.NoError(t, Check(testNamespace, id, rotated, authorityIs(rotated)))
}

func TestParseNamespace(t *testing.T) {
	ns, err := ParseNamespace(testNamespace.String())
	require.NoError(t, err)
	assert.Equal(t, testNamespace, ns)

	_, err = ParseNamespace("0x1234")
	assert.ErrorIs(t, err, ErrInvalidNamespaceConfig)

	_, err = ParseNamespace("zz")
	assert.ErrorIs(t, err, ErrInvalidNamespaceConfig)
}
