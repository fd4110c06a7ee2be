package cli

import (
	"bytes"
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/taskpool/internal/config"
	"github.com/kubev2v/taskpool/internal/models"
)

var _ = Describe("History command", func() {
	var (
		cfg *config.Configuration
		out *bytes.Buffer
	)

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults()
		cfg.DataFolder = GinkgoT().TempDir()
		out = &bytes.Buffer{}

		s, err := openStore(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		start := time.Now().Add(-time.Minute)
		Expect(s.Batches().Save(context.Background(), models.BatchStatus{
			ID: "b-ok", Name: "nightly", State: models.BatchStateCompleted, Total: 1, Succeeded: 1,
			StartedAt: start, FinishedAt: start.Add(time.Second),
		}, []models.CommandOutput{{Index: 0, Name: "greet", Stdout: "hello\n", Duration: time.Second}})).To(Succeed())
		Expect(s.Batches().Save(context.Background(), models.BatchStatus{
			ID: "b-bad", State: models.BatchStateError, Total: 2,
			Error: errors.New(`task "x" failed`), StartedAt: start.Add(time.Second), FinishedAt: start.Add(2 * time.Second),
		}, nil)).To(Succeed())

		Expect(s.Close()).To(Succeed())
	})

	execute := func(args ...string) error {
		root := newRootCmd(cfg)
		root.SetOut(out)
		root.SetErr(out)
		root.SetArgs(append([]string{"history"}, args...))
		return root.Execute()
	}

	It("should list recorded batches newest first", func() {
		Expect(execute()).To(Succeed())

		text := out.String()
		Expect(text).To(ContainSubstring("b-ok"))
		Expect(text).To(ContainSubstring("nightly"))
		Expect(text).To(ContainSubstring("2 of 2 batches"))
		Expect(text).To(MatchRegexp(`(?s)b-bad.*b-ok`))
	})

	It("should filter by state", func() {
		Expect(execute("--state", "error")).To(Succeed())

		Expect(out.String()).NotTo(ContainSubstring("b-ok"))
		Expect(out.String()).To(ContainSubstring("1 of 1 batches"))
	})

	It("should show one batch with its outputs", func() {
		Expect(execute("b-ok")).To(Succeed())

		text := out.String()
		Expect(text).To(ContainSubstring("state: completed"))
		Expect(text).To(ContainSubstring("✔ greet"))
		Expect(text).To(ContainSubstring("  hello"))
	})

	It("should fail for an unknown batch", func() {
		Expect(execute("nope")).To(MatchError(`batch "nope" not found`))
	})

	It("should require a data folder", func() {
		cfg.DataFolder = ""

		Expect(execute()).To(MatchError("history needs --data-folder"))
	})
})
