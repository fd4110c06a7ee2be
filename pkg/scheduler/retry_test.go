package scheduler_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/taskpool/pkg/scheduler"
)

var _ = Describe("Retry", func() {
	fast := scheduler.RetryPolicy{Attempts: 3, Initial: time.Millisecond, Max: 5 * time.Millisecond}

	It("should retry until the work succeeds", func() {
		attempts := 0
		work := scheduler.Retry(func(ctx context.Context) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		}, fast)

		v, err := work(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal("ok"))
		Expect(attempts).To(Equal(3))
	})

	It("should return the last error once attempts are exhausted", func() {
		attempts := 0
		work := scheduler.Retry(func(ctx context.Context) (int, error) {
			attempts++
			return 0, errors.New("still failing")
		}, fast)

		_, err := work(context.Background())
		Expect(err).To(MatchError("still failing"))
		Expect(attempts).To(Equal(3))
	})

	It("should stop on a permanent error", func() {
		attempts := 0
		errFatal := errors.New("fatal")
		work := scheduler.Retry(func(ctx context.Context) (int, error) {
			attempts++
			return 0, scheduler.Permanent(errFatal)
		}, fast)

		_, err := work(context.Background())
		Expect(errors.Is(err, errFatal)).To(BeTrue())
		Expect(attempts).To(Equal(1))
	})

	It("should fill zero values with defaults", func() {
		Expect(scheduler.DefaultRetryPolicy().Attempts).To(BeEquivalentTo(3))
	})

	It("should compose with RunInParallel", func() {
		attempts := 0
		flaky := scheduler.Retry(func(ctx context.Context) (int, error) {
			attempts++
			if attempts == 1 {
				return 0, errors.New("transient")
			}
			return 7, nil
		}, fast)

		results, err := scheduler.RunInParallel(context.Background(), []scheduler.Work[int]{flaky, constant(8)})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(Equal([]int{7, 8}))
	})
})
