package batch_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/taskpool/internal/batch"
	"github.com/kubev2v/taskpool/internal/models"
	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
)

var _ = Describe("Loader", func() {
	Describe("Parse", func() {
		It("should parse a complete batch", func() {
			data := []byte(`
name: deploy
mode: streaming
workers: 2
tasks:
  - name: host-a
    command: ["sh", "-c", "echo a"]
    dir: /tmp
    env: ["FOO=bar"]
    timeout: 5s
    retries: 2
  - command: ["true"]
`)

			b, err := batch.Parse(data)

			Expect(err).NotTo(HaveOccurred())
			Expect(b.Name).To(Equal("deploy"))
			Expect(b.Mode).To(Equal(models.BatchModeStreaming))
			Expect(b.Workers).To(Equal(2))
			Expect(b.Tasks).To(HaveLen(2))
			Expect(b.Tasks[0]).To(Equal(models.CommandSpec{
				Name:    "host-a",
				Command: []string{"sh", "-c", "echo a"},
				Dir:     "/tmp",
				Env:     []string{"FOO=bar"},
				Timeout: 5 * time.Second,
				Retries: 2,
			}))
		})

		It("should default the mode and task names", func() {
			b, err := batch.Parse([]byte("tasks:\n  - command: [\"true\"]\n  - command: [\"false\"]\n"))

			Expect(err).NotTo(HaveOccurred())
			Expect(b.Mode).To(Equal(models.BatchModeOrdered))
			Expect(b.Tasks[0].Name).To(Equal("task-0"))
			Expect(b.Tasks[1].Name).To(Equal("task-1"))
		})

		DescribeTable("should reject invalid batches",
			func(data string, reason string) {
				_, err := batch.Parse([]byte(data))

				Expect(srvErrors.IsBatchValidationError(err)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring(reason))
			},
			Entry("malformed yaml", "tasks: [", "invalid batch"),
			Entry("unknown mode", "mode: random\ntasks:\n  - command: [\"true\"]\n", "invalid batch mode"),
			Entry("negative workers", "workers: -1\ntasks:\n  - command: [\"true\"]\n", "workers must not be negative"),
			Entry("no tasks", "name: empty\n", "no tasks defined"),
			Entry("missing command", "tasks:\n  - name: a\n", "task 0 has no command"),
			Entry("bad timeout", "tasks:\n  - name: a\n    command: [\"true\"]\n    timeout: soon\n", `task "a" has an invalid timeout`),
		)
	})

	Describe("Load", func() {
		It("should read the batch from disk", func() {
			path := filepath.Join(GinkgoT().TempDir(), "batch.yaml")
			Expect(os.WriteFile(path, []byte("name: disk\ntasks:\n  - command: [\"true\"]\n"), 0o600)).To(Succeed())

			b, err := batch.Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(b.Name).To(Equal("disk"))
		})

		It("should fail on a missing file", func() {
			_, err := batch.Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))

			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
		})
	})
})
