package kernel_test

import (
	"testing"

	"tracker/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "buyer_one", kernel.NormalizeUsername(" @Buyer_One "))
	assert.Equal(t, "buyer_one", kernel.NormalizeUsername("buyer_one"))
	assert.Equal(t, "", kernel.NormalizeUsername("@"))
}

func TestNormalizeUsernames(t *testing.T) {
	assert.Equal(t, []string{"alice", "bob_b"}, kernel.NormalizeUsernames([]string{"@Alice", " ", "BOB_B"}))
}

func TestExtractMentions(t *testing.T) {
	t.Run("finds mentions in order", func(t *testing.T) {
		mentions := kernel.ExtractMentions("Разбор: @alpha_1, @Bravo22 и @charlie")

		assert.Equal(t, []string{"alpha_1", "Bravo22", "charlie"}, mentions)
	})

	t.Run("skips short handles", func(t *testing.T) {
		assert.Empty(t, kernel.ExtractMentions("@abc @abcd"))
	})

	t.Run("deduplicates case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"Buyer1"}, kernel.ExtractMentions("@Buyer1 @buyer1"))
	})
}
