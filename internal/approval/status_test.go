package approval_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/portal-management/internal/approval"
)

var _ = Describe("Review state machine", func() {
	var (
		admin approval.Caller
		head  approval.Caller
		now   time.Time
	)

	BeforeEach(func() {
		admin = approval.Caller{ID: 1, Role: approval.RoleAdmin}
		head = approval.Caller{ID: 2, Role: approval.RoleDepartmentHead, DepartmentID: ptr(10)}
		now = time.Now()
	})

	Describe("ParseStatus", func() {
		It("accepts the three lifecycle states", func() {
			for _, raw := range []string{"PENDING", "APPROVED", "REJECTED"} {
				status, err := approval.ParseStatus(raw)
				Expect(err).ToNot(HaveOccurred())
				Expect(status.Valid()).To(BeTrue())
			}
		})

		It("rejects anything else", func() {
			_, err := approval.ParseStatus("DRAFT")
			Expect(err).To(HaveOccurred())

			_, err = approval.ParseStatus("approved")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("InitialState", func() {
		It("auto-approves admin content with self attribution", func() {
			state := approval.InitialState(admin, now)
			Expect(state.Status).To(Equal(approval.StatusApproved))
			Expect(state.ReviewedByID).ToNot(BeNil())
			Expect(*state.ReviewedByID).To(Equal(admin.ID))
			Expect(state.ReviewedAt).ToNot(BeNil())
		})

		It("puts non-admin content in PENDING without attribution", func() {
			state := approval.InitialState(head, now)
			Expect(state.Status).To(Equal(approval.StatusPending))
			Expect(state.ReviewedByID).To(BeNil())
			Expect(state.ReviewedAt).To(BeNil())
		})
	})

	Describe("DecidedState", func() {
		It("maps the decision onto APPROVED or REJECTED", func() {
			Expect(approval.DecidedState(admin, true, now).Status).To(Equal(approval.StatusApproved))
			Expect(approval.DecidedState(admin, false, now).Status).To(Equal(approval.StatusRejected))
		})

		It("attributes the decision to the reviewer", func() {
			state := approval.DecidedState(admin, true, now)
			Expect(*state.ReviewedByID).To(Equal(admin.ID))
			Expect(*state.ReviewedAt).To(Equal(now))
		})
	})
})
