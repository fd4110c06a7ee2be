package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
	"github.com/kubev2v/taskpool/pkg/scheduler"
)

func sleepingWork(d time.Duration, v int) scheduler.Work[int] {
	return func(ctx context.Context) (int, error) {
		time.Sleep(d)
		return v, nil
	}
}

var _ = Describe("Manager", func() {
	var (
		ctx context.Context
		m   *scheduler.Manager[int]
	)

	BeforeEach(func() {
		ctx = context.Background()
	})

	AfterEach(func() {
		if m != nil {
			m.Close()
			m = nil
		}
	})

	Describe("Submit", func() {
		// Given a manager with 3 workers
		// When 10 tasks are submitted and nobody waits
		// Then every task still runs to completion
		It("should schedule queued tasks without an explicit wait", func() {
			var (
				mu        sync.Mutex
				completed []int
			)
			m = scheduler.NewManager[int](ctx, 3, nil)

			for i := range 10 {
				id := i
				err := m.Submit(scheduler.NewTask(id, func(ctx context.Context) (int, error) {
					time.Sleep(20 * time.Millisecond)
					mu.Lock()
					completed = append(completed, id)
					mu.Unlock()
					return id, nil
				}))
				Expect(err).NotTo(HaveOccurred())
			}

			Eventually(func() []int {
				mu.Lock()
				defer mu.Unlock()
				return append([]int(nil), completed...)
			}, 2*time.Second, 10*time.Millisecond).Should(ConsistOf(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
		})

		It("should never run more tasks than max workers", func() {
			var active, maxSeen atomic.Int32
			m = scheduler.NewManager[int](ctx, 3, nil)

			for i := range 10 {
				err := m.Submit(scheduler.NewTask(i, func(ctx context.Context) (int, error) {
					n := active.Add(1)
					for {
						seen := maxSeen.Load()
						if n <= seen || maxSeen.CompareAndSwap(seen, n) {
							break
						}
					}
					time.Sleep(20 * time.Millisecond)
					active.Add(-1)
					return 0, nil
				}))
				Expect(err).NotTo(HaveOccurred())
				Expect(m.RunningCount()).To(BeNumerically("<=", 3))
			}

			Expect(m.WaitForAll(ctx)).To(Succeed())
			Expect(maxSeen.Load()).To(BeNumerically("<=", 3))
			Expect(maxSeen.Load()).To(BeNumerically(">", 1))
		})

		It("should start the first wave immediately", func() {
			var (
				mu     sync.Mutex
				starts []time.Duration
			)
			start := time.Now()
			m = scheduler.NewManager[int](ctx, 2, nil)

			for i := range 6 {
				err := m.Submit(scheduler.NewTask(i, func(ctx context.Context) (int, error) {
					mu.Lock()
					starts = append(starts, time.Since(start))
					mu.Unlock()
					time.Sleep(50 * time.Millisecond)
					return 0, nil
				}))
				Expect(err).NotTo(HaveOccurred())
			}

			Eventually(func() int {
				mu.Lock()
				defer mu.Unlock()
				return len(starts)
			}, 2*time.Second, 10*time.Millisecond).Should(Equal(6))

			mu.Lock()
			defer mu.Unlock()
			Expect(starts[0]).To(BeNumerically("<", 40*time.Millisecond))
			Expect(starts[1]).To(BeNumerically("<", 40*time.Millisecond))
			Expect(starts[5]).To(BeNumerically(">=", 90*time.Millisecond))
		})

		It("should reject tasks after Close", func() {
			m = scheduler.NewManager[int](ctx, 1, nil)
			m.Close()

			err := m.Submit(scheduler.NewTask(0, sleepingWork(0, 1)))
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsSchedulerClosedError(err)).To(BeTrue())
		})
	})

	Describe("callback", func() {
		It("should be called for every successful task", func() {
			var (
				mu      sync.Mutex
				results []int
			)
			m = scheduler.NewManager(ctx, 2, func(v int) {
				mu.Lock()
				results = append(results, v)
				mu.Unlock()
			})

			for i := range 5 {
				Expect(m.Submit(scheduler.NewTask(i, sleepingWork(10*time.Millisecond, i*10)))).To(Succeed())
			}

			Expect(m.WaitForAll(ctx)).To(Succeed())

			mu.Lock()
			defer mu.Unlock()
			Expect(results).To(ConsistOf(0, 10, 20, 30, 40))
		})

		It("should not be called for failed tasks", func() {
			var calls atomic.Int32
			m = scheduler.NewManager(ctx, 2, func(int) { calls.Add(1) })

			Expect(m.Submit(scheduler.NewTask(0, sleepingWork(10*time.Millisecond, 1)))).To(Succeed())
			Expect(m.Submit(scheduler.NewTask(1, func(ctx context.Context) (int, error) {
				return 0, errors.New("boom")
			}))).To(Succeed())

			Expect(m.WaitForAll(ctx)).To(MatchError("boom"))
			Eventually(calls.Load, time.Second).Should(BeEquivalentTo(1))
			Consistently(calls.Load, 50*time.Millisecond).Should(BeEquivalentTo(1))
		})
	})

	Describe("failures", func() {
		// Given a batch where one task fails among succeeding ones
		// When the caller waits for all tasks
		// Then the original error is returned to the caller, unwrapped
		It("should return the task error on WaitForAll", func() {
			var calls atomic.Int32
			errWorker := errors.New("worker failure")
			m = scheduler.NewManager(ctx, 2, func(int) { calls.Add(1) })

			Expect(m.Submit(scheduler.NewTask(0, sleepingWork(20*time.Millisecond, 100)))).To(Succeed())
			Expect(m.Submit(scheduler.NewTask(1, func(ctx context.Context) (int, error) {
				time.Sleep(20 * time.Millisecond)
				return 0, errWorker
			}))).To(Succeed())
			Expect(m.Submit(scheduler.NewTask(2, sleepingWork(20*time.Millisecond, 100)))).To(Succeed())

			err := m.WaitForAll(ctx)
			Expect(err).To(BeIdenticalTo(errWorker))
			Eventually(calls.Load, time.Second).Should(BeNumerically(">=", 1))
		})

		It("should return one failure and keep the other queued", func() {
			errFirst := errors.New("first failure")
			errSecond := errors.New("second failure")
			m = scheduler.NewManager[int](ctx, 2, nil)

			Expect(m.Submit(scheduler.NewTask(0, func(ctx context.Context) (int, error) { return 0, errFirst }))).To(Succeed())
			Expect(m.Submit(scheduler.NewTask(1, func(ctx context.Context) (int, error) { return 0, errSecond }))).To(Succeed())

			Eventually(func() int {
				m.Reconcile()
				return m.RunningCount()
			}, time.Second, 5*time.Millisecond).Should(Equal(0))

			first := m.PropagateDeferredFailures()
			Expect(first).To(Or(BeIdenticalTo(errFirst), BeIdenticalTo(errSecond)))

			second := m.PropagateDeferredFailures()
			Expect(second).To(Or(BeIdenticalTo(errFirst), BeIdenticalTo(errSecond)))
			Expect(second).NotTo(BeIdenticalTo(first))

			Expect(m.PropagateDeferredFailures()).To(Succeed())
		})

		It("should report a panicking task as a failure", func() {
			m = scheduler.NewManager[int](ctx, 1, nil)

			Expect(m.Submit(scheduler.NewTask(7, func(ctx context.Context) (int, error) {
				panic("boom")
			}))).To(Succeed())

			err := m.WaitForAll(ctx)
			Expect(err).To(MatchError(ContainSubstring("task 7 panicked: boom")))
		})
	})

	Describe("WaitForAny", func() {
		It("should return immediately when nothing is in flight", func() {
			m = scheduler.NewManager[int](ctx, 1, nil)

			running, err := m.WaitForAny(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(running).To(BeFalse())
		})

		It("should return once a single task finishes", func() {
			m = scheduler.NewManager[int](ctx, 2, nil)
			release := make(chan struct{})

			Expect(m.Submit(scheduler.NewTask(0, sleepingWork(10*time.Millisecond, 1)))).To(Succeed())
			Expect(m.Submit(scheduler.NewTask(1, func(ctx context.Context) (int, error) {
				<-release
				return 2, nil
			}))).To(Succeed())

			running, err := m.WaitForAny(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(running).To(BeTrue())

			close(release)
			Expect(m.WaitForAll(ctx)).To(Succeed())
			Expect(m.RunningCount()).To(Equal(0))
		})

		It("should stop waiting when the context ends", func() {
			m = scheduler.NewManager[int](ctx, 1, nil)
			release := make(chan struct{})
			defer close(release)

			Expect(m.Submit(scheduler.NewTask(0, func(ctx context.Context) (int, error) {
				<-release
				return 0, nil
			}))).To(Succeed())

			waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer cancel()

			running, err := m.WaitForAny(waitCtx)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(running).To(BeTrue())
		})
	})

	Describe("HasIdleWorker", func() {
		It("should reconcile finished tasks before answering", func() {
			m = scheduler.NewManager[int](ctx, 1, nil)
			release := make(chan struct{})

			Expect(m.Submit(scheduler.NewTask(0, func(ctx context.Context) (int, error) {
				<-release
				return 1, nil
			}))).To(Succeed())
			Expect(m.HasIdleWorker()).To(BeFalse())

			close(release)
			Eventually(m.HasIdleWorker, time.Second, 5*time.Millisecond).Should(BeTrue())
			Expect(m.RunningCount()).To(Equal(0))
		})
	})

	Describe("Cancel", func() {
		// Given a manager with one worker busy and tasks pending
		// When the manager is cancelled
		// Then the running task completes but no pending task is admitted
		It("should stop admission without interrupting running tasks", func() {
			var started atomic.Int32
			release := make(chan struct{})
			finished := make(chan int, 1)
			m = scheduler.NewManager(ctx, 1, func(v int) { finished <- v })

			first := scheduler.NewTask(0, func(ctx context.Context) (int, error) {
				started.Add(1)
				<-release
				return 42, nil
			})
			Expect(m.Submit(first)).To(Succeed())
			Eventually(started.Load, time.Second).Should(BeEquivalentTo(1))

			for i := 1; i < 4; i++ {
				Expect(m.Submit(scheduler.NewTask(i, func(ctx context.Context) (int, error) {
					started.Add(1)
					return 0, nil
				}))).To(Succeed())
			}
			Expect(m.PendingCount()).To(Equal(3))

			m.Cancel()
			Expect(m.IsCancelled()).To(BeTrue())
			Expect(srvErrors.IsCancelledError(m.CheckCancelled())).To(BeTrue())

			close(release)

			err := m.WaitForAll(ctx)
			Expect(srvErrors.IsCancelledError(err)).To(BeTrue())
			Expect(started.Load()).To(BeEquivalentTo(1))
			Expect(m.PendingCount()).To(Equal(3))

			Eventually(finished, time.Second).Should(Receive(Equal(42)))
			v, ok := first.Result()
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(42))
		})

		// Given two workers, one task done, one still running and one pending
		// When WaitForAll stops on the cancellation
		// Then Drain joins the running task and its value reaches the callback
		It("should let Drain collect tasks still running after cancellation", func() {
			var (
				mu   sync.Mutex
				seen []int
			)
			release := make(chan struct{})
			var started atomic.Int32
			m = scheduler.NewManager(ctx, 2, func(v int) {
				mu.Lock()
				seen = append(seen, v)
				mu.Unlock()
			})

			Expect(m.Submit(scheduler.NewTask(0, func(ctx context.Context) (int, error) {
				started.Add(1)
				return 1, nil
			}))).To(Succeed())
			Expect(m.Submit(scheduler.NewTask(1, func(ctx context.Context) (int, error) {
				started.Add(1)
				<-release
				return 2, nil
			}))).To(Succeed())
			Eventually(started.Load, time.Second).Should(BeEquivalentTo(2))

			m.Cancel()
			_ = m.Submit(scheduler.NewTask(2, func(ctx context.Context) (int, error) {
				started.Add(1)
				return 3, nil
			}))

			Expect(srvErrors.IsCancelledError(m.WaitForAll(ctx))).To(BeTrue())

			go func() {
				time.Sleep(50 * time.Millisecond)
				close(release)
			}()
			Expect(m.Drain(ctx)).To(Succeed())

			Expect(m.RunningCount()).To(Equal(0))
			Expect(m.PendingCount()).To(Equal(1))
			Expect(started.Load()).To(BeEquivalentTo(2))
			mu.Lock()
			defer mu.Unlock()
			Expect(seen).To(ConsistOf(1, 2))
		})

		It("should report a failure seen while draining", func() {
			boom := errors.New("boom")
			m = scheduler.NewManager[int](ctx, 1, nil)
			Expect(m.Submit(scheduler.NewTask(0, func(ctx context.Context) (int, error) {
				time.Sleep(20 * time.Millisecond)
				return 0, boom
			}))).To(Succeed())
			m.Cancel()

			Expect(m.Drain(ctx)).To(MatchError(boom))
			Expect(m.RunningCount()).To(Equal(0))
		})

		It("should stop draining when the context ends", func() {
			release := make(chan struct{})
			defer close(release)
			m = scheduler.NewManager[int](ctx, 1, nil)
			Expect(m.Submit(scheduler.NewTask(0, func(ctx context.Context) (int, error) {
				<-release
				return 0, nil
			}))).To(Succeed())

			drainCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer cancel()
			Expect(m.Drain(drainCtx)).To(MatchError(context.DeadlineExceeded))
		})

		It("should not report cancellation before Cancel", func() {
			m = scheduler.NewManager[int](ctx, 1, nil)
			Expect(m.CheckCancelled()).To(Succeed())
			Expect(m.IsCancelled()).To(BeFalse())
		})
	})

	Describe("Shutdown", func() {
		It("should wait for running tasks to finish", func() {
			m = scheduler.NewManager[int](ctx, 1, nil)
			release := make(chan struct{})

			Expect(m.Submit(scheduler.NewTask(0, func(ctx context.Context) (int, error) {
				<-release
				return 0, nil
			}))).To(Succeed())

			done := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				Expect(m.Shutdown(context.Background())).To(Succeed())
				close(done)
			}()

			Consistently(done, 50*time.Millisecond).ShouldNot(BeClosed())
			close(release)
			Eventually(done, time.Second).Should(BeClosed())
		})

		It("should give up when the context ends", func() {
			m = scheduler.NewManager[int](ctx, 1, nil)
			release := make(chan struct{})
			defer close(release)

			Expect(m.Submit(scheduler.NewTask(0, func(ctx context.Context) (int, error) {
				<-release
				return 0, nil
			}))).To(Succeed())

			shutdownCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
			defer cancel()
			Expect(m.Shutdown(shutdownCtx)).To(MatchError(context.DeadlineExceeded))
		})
	})

	It("should carry a unique id", func() {
		m = scheduler.NewManager[int](ctx, 1, nil)
		other := scheduler.NewManager[int](ctx, 1, nil)
		defer other.Close()

		Expect(m.ID()).NotTo(Equal(other.ID()))
		Expect(m.MaxWorkers()).To(Equal(1))
	})
})
