package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ncuacg/assistant/pkg/llm"
	"github.com/ncuacg/assistant/pkg/llm/ollama"
)

func TestOllama(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "LLM Ollama Suite")
}

var _ = Describe("Chatter", func() {
	var (
		ctx      context.Context
		server   *httptest.Server
		captured map[string]any
	)

	BeforeEach(func() {
		ctx = context.Background()
		captured = nil
	})

	AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	newServer := func(handler http.HandlerFunc) *ollama.Chatter {
		server = httptest.NewServer(handler)
		c, err := ollama.NewChatter(ollama.ChatterConfig{
			BaseURL:     server.URL,
			Model:       "llama3.1",
			Temperature: 0.2,
		})
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	It("sends system and user messages and returns the reply", func() {
		c := newServer(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/chat"))
			Expect(json.NewDecoder(r.Body).Decode(&captured)).To(Succeed())
			json.NewEncoder(w).Encode(map[string]any{
				"message": map[string]any{"role": "assistant", "content": "hello there"},
			})
		})

		reply, err := c.Chat(ctx, "be brief", "say hello")
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal("hello there"))

		Expect(captured["model"]).To(Equal("llama3.1"))
		Expect(captured["stream"]).To(Equal(false))
		msgs := captured["messages"].([]any)
		Expect(msgs).To(HaveLen(2))
		Expect(msgs[0].(map[string]any)["role"]).To(Equal("system"))
		Expect(msgs[0].(map[string]any)["content"]).To(Equal("be brief"))
		Expect(msgs[1].(map[string]any)["role"]).To(Equal("user"))

		opts := captured["options"].(map[string]any)
		Expect(opts["temperature"]).To(BeNumerically("~", 0.2, 1e-9))
	})

	It("wraps non-200 responses in ErrChat", func() {
		c := newServer(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		})

		_, err := c.Chat(ctx, "system", "user")
		Expect(err).To(MatchError(llm.ErrChat))
		Expect(err.Error()).To(ContainSubstring("404"))
	})

	It("rejects an empty reply", func() {
		c := newServer(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"message": map[string]any{"role": "assistant", "content": ""},
			})
		})

		_, err := c.Chat(ctx, "system", "user")
		Expect(err).To(MatchError(llm.ErrChat))
	})

	It("honors context cancellation", func() {
		c := newServer(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := c.Chat(cancelled, "system", "user")
		Expect(err).To(HaveOccurred())
	})
})
