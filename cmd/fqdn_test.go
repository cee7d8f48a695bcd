package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalFQDN_StartsWithHostname(t *testing.T) {
	host, err := os.Hostname()
	require.NoError(t, err)
	fqdn, err := localFQDN()
	require.NoError(t, err)
	require.NotEmpty(t, fqdn)
	require.False(t, strings.HasSuffix(fqdn, "."))
	if strings.Contains(host, ".") {
		require.Equal(t, host, fqdn)
	}
}
