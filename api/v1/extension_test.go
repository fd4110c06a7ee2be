package v1_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/taskpool/api/v1"
	"github.com/kubev2v/taskpool/internal/models"
)

var _ = Describe("NewBatchStatusFromModel", func() {
	It("should leave optional fields empty for a fresh runner", func() {
		s := v1.NewBatchStatusFromModel(models.BatchStatus{State: models.BatchStateReady})

		Expect(s.State).To(Equal(v1.BatchStatusStateReady))
		Expect(s.Id).To(BeNil())
		Expect(s.Error).To(BeNil())
		Expect(s.StartedAt).To(BeNil())
		Expect(s.FinishedAt).To(BeNil())
	})

	It("should copy counters, timestamps and the error message", func() {
		started := time.Now().Add(-time.Minute)
		finished := time.Now()

		s := v1.NewBatchStatusFromModel(models.BatchStatus{
			ID:         "id-1",
			Name:       "deploy",
			State:      models.BatchStateError,
			Total:      5,
			Succeeded:  2,
			Running:    1,
			Pending:    2,
			Error:      errors.New("task \"a\" failed"),
			StartedAt:  started,
			FinishedAt: finished,
		})

		Expect(s.State).To(Equal(v1.BatchStatusStateError))
		Expect(*s.Id).To(Equal("id-1"))
		Expect(*s.Name).To(Equal("deploy"))
		Expect(s.Total).To(Equal(5))
		Expect(s.Succeeded).To(Equal(2))
		Expect(s.Running).To(Equal(1))
		Expect(s.Pending).To(Equal(2))
		Expect(*s.Error).To(Equal(`task "a" failed`))
		Expect(*s.StartedAt).To(BeTemporally("==", started))
		Expect(*s.FinishedAt).To(BeTemporally("==", finished))
	})
})

var _ = Describe("NewBatchDetailsFromModel", func() {
	It("should convert outputs", func() {
		d := v1.NewBatchDetailsFromModel(models.BatchRecord{
			Status: models.BatchStatus{ID: "b1", State: models.BatchStateCompleted},
			Outputs: []models.CommandOutput{
				{Index: 0, Name: "a", Stdout: "out", Duration: 1500 * time.Millisecond},
			},
		})

		Expect(*d.Id).To(Equal("b1"))
		Expect(d.Outputs).To(ConsistOf(v1.TaskOutput{Index: 0, Name: "a", Stdout: "out", DurationMs: 1500}))
	})

	It("should return an empty list without outputs", func() {
		d := v1.NewBatchDetailsFromModel(models.BatchRecord{})

		Expect(d.Outputs).NotTo(BeNil())
		Expect(d.Outputs).To(BeEmpty())
	})
})

var _ = Describe("ParseBatchStates", func() {
	It("should accept known states", func() {
		states, err := v1.ParseBatchStates([]v1.BatchStatusState{v1.BatchStatusStateError, v1.BatchStatusStateCancelled})

		Expect(err).NotTo(HaveOccurred())
		Expect(states).To(Equal([]models.BatchState{models.BatchStateError, models.BatchStateCancelled}))
	})

	It("should reject unknown states", func() {
		_, err := v1.ParseBatchStates([]v1.BatchStatusState{"lost"})

		Expect(err).To(MatchError(`invalid state "lost"`))
	})
})
