package dotdir_test

import (
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ncuacg/assistant/pkg/dotdir"
)

func TestDotdir(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dotdir Suite")
}

var _ = Describe("Manager", func() {
	var tmpDir string
	var m *dotdir.Manager

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "dotdir-test-*")
		Expect(err).NotTo(HaveOccurred())
		m = dotdir.NewManager()
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	Describe("Target", func() {
		It("uses the override directory when provided", func() {
			target, err := m.Target(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(target).To(Equal(tmpDir))
		})

		It("creates the override directory if it does not exist", func() {
			sub := tmpDir + "/nested/.assistant"
			target, err := m.Target(sub)
			Expect(err).NotTo(HaveOccurred())

			info, err := os.Stat(target)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())
		})
	})
})
