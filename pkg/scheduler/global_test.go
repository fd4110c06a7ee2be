package scheduler_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
	"github.com/kubev2v/taskpool/pkg/scheduler"
)

var _ = Describe("global controller", func() {
	BeforeEach(func() {
		scheduler.ResetGlobal()
	})

	AfterEach(func() {
		scheduler.ResetGlobal()
	})

	It("should be a no-op when nothing is registered", func() {
		Expect(scheduler.Global()).To(BeNil())

		scheduler.Cancel()
		Expect(scheduler.CheckCancelled()).To(Succeed())
		Expect(scheduler.IsCancelled()).To(BeFalse())
	})

	It("should delegate to the registered manager", func() {
		m := scheduler.NewManager[int](context.Background(), 1, nil)
		defer m.Close()
		scheduler.SetGlobal(m)

		Expect(scheduler.CheckCancelled()).To(Succeed())

		scheduler.Cancel()

		Expect(m.IsCancelled()).To(BeTrue())
		Expect(scheduler.IsCancelled()).To(BeTrue())
		Expect(srvErrors.IsCancelledError(scheduler.CheckCancelled())).To(BeTrue())
	})

	It("should refuse to be set twice", func() {
		first := scheduler.NewManager[int](context.Background(), 1, nil)
		defer first.Close()
		second := scheduler.NewManager[string](context.Background(), 1, nil)
		defer second.Close()

		scheduler.SetGlobal(first)
		Expect(func() { scheduler.SetGlobal(second) }).To(PanicWith(ContainSubstring("only once")))
		Expect(scheduler.Global()).To(BeIdenticalTo(first))
	})

	It("should refuse a nil controller", func() {
		Expect(func() { scheduler.SetGlobal(nil) }).To(Panic())
	})
})
