package persona_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ncuacg/assistant/pkg/logger"
	"github.com/ncuacg/assistant/pkg/persona"
)

var _ = Describe("Resolver", func() {
	newResolver := func(phrases map[string]string) *persona.Resolver {
		log := logger.NewLogger(false)
		registry := persona.NewRegistry(persona.Config{}, log)
		return persona.NewResolver(registry, phrases, log)
	}

	It("unlocks a hidden persona on a secret phrase match", func() {
		r := newResolver(map[string]string{
			`open the vault`: "vault_keeper",
		})

		got := r.Resolve("starter_guide", "please OPEN the Vault for me")
		Expect(got).To(Equal("vault_keeper"))
	})

	It("matches phrases case-insensitively as regular expressions", func() {
		r := newResolver(map[string]string{
			`archive\s+pass`: "vault_keeper",
		})

		Expect(r.Resolve("", "Archive  Pass")).To(Equal("vault_keeper"))
	})

	It("ignores a matching phrase whose target does not exist", func() {
		r := newResolver(map[string]string{
			`open sesame`: "no_such_persona",
		})

		Expect(r.Resolve("starter_guide", "open sesame")).To(Equal("starter_guide"))
	})

	It("keeps an existing preferred persona when no phrase matches", func() {
		r := newResolver(nil)
		Expect(r.Resolve("parent_guardian", "what's on this weekend?")).
			To(Equal("parent_guardian"))
	})

	It("falls back to the default for an unknown preferred persona", func() {
		r := newResolver(nil)
		Expect(r.Resolve("no_such_persona", "hello")).To(Equal("weekend_curator"))
	})

	It("falls back to the default for an empty preferred persona", func() {
		r := newResolver(nil)
		Expect(r.Resolve("", "hello")).To(Equal("weekend_curator"))
	})

	It("skips patterns that do not compile", func() {
		r := newResolver(map[string]string{
			`([`:          "vault_keeper",
			`valid match`: "vault_keeper",
		})

		Expect(r.Resolve("", "valid match")).To(Equal("vault_keeper"))
		Expect(r.Resolve("", "anything else")).To(Equal("weekend_curator"))
	})
})
