package code_summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedLanguage(t *testing.T) {
	assert.Equal(t, "go", supportedLanguage("cmd/main.go"))
	assert.Equal(t, "typescript", supportedLanguage("src/App.tsx"))
	assert.Equal(t, "rust", supportedLanguage("src/lib.rs"))
	assert.Equal(t, "", supportedLanguage("README.md"))
	assert.Equal(t, "", supportedLanguage("Makefile"))
}

func TestSummarizeFile_Go(t *testing.T) {
	source := []byte(`package payments

type Invoice struct {
	Total int
}

func Charge(amount int) error {
	return nil
}
`)

	summary := SummarizeFile("payments/invoice.go", source)
	require.NotEmpty(t, summary)
	assert.Equal(t, "payments/invoice.go", summary[0])

	joined := strings.Join(summary, "\n")
	assert.Contains(t, joined, "Invoice")
	assert.Contains(t, joined, "Charge")
}

func TestSummarizeFile_Rust(t *testing.T) {
	source := []byte(`pub struct Wallet;

impl Wallet {
    pub fn balance(&self) -> u64 { 0 }
}
`)

	summary := SummarizeFile("src/wallet.rs", source)
	require.Len(t, summary, 2)
	assert.Equal(t, "src/wallet.rs", summary[0])
	assert.Contains(t, summary[1], "struct: Wallet")
	assert.Contains(t, summary[1], "impl: Wallet")
	assert.Contains(t, summary[1], "function: balance")
}

func TestSummarizeFile_UnsupportedFallsBackToFirstLine(t *testing.T) {
	summary := SummarizeFile("notes.txt", []byte("first line\nsecond line\n"))
	require.Len(t, summary, 2)
	assert.Equal(t, "notes.txt", summary[0])
	assert.Equal(t, "first line", summary[1])
}
