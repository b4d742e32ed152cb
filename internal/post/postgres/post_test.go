package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	postDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/post"
	"github.com/frahmantamala/portal-management/internal/post"
)

func TestPostRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Post Repository Suite")
}

type SQLitePost struct {
	ID           int64      `gorm:"primaryKey"`
	Title        string     `gorm:"not null"`
	Content      string     `gorm:"not null"`
	AuthorID     int64      `gorm:"column:author_id;not null"`
	DepartmentID *int64     `gorm:"column:department_id"`
	IsPublic     bool       `gorm:"column:is_public"`
	Status       string     `gorm:"column:status;default:'PENDING'"`
	ReviewedByID *int64     `gorm:"column:reviewed_by_id"`
	ReviewedAt   *time.Time `gorm:"column:reviewed_at"`
	Tags         string     `gorm:"column:tags"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (SQLitePost) TableName() string {
	return "posts"
}

func ptr(v int64) *int64 { return &v }

var _ = Describe("PostRepository", func() {
	var (
		db   *gorm.DB
		repo post.RepositoryAPI
	)

	seed := func(title, content string, deptID *int64, isPublic bool, status string, updatedAt time.Time) *postDatamodel.Post {
		p := &postDatamodel.Post{
			Title:        title,
			Content:      content,
			AuthorID:     1,
			DepartmentID: deptID,
			IsPublic:     isPublic,
			Status:       status,
			CreatedAt:    updatedAt,
			UpdatedAt:    updatedAt,
		}
		Expect(repo.Create(p)).To(Succeed())
		// Create lets GORM write timestamps; pin updated_at explicitly for
		// deterministic ordering assertions.
		Expect(db.Model(&SQLitePost{}).Where("id = ?", p.ID).Update("updated_at", updatedAt).Error).To(Succeed())
		return p
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLitePost{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewPostRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GetByID", func() {
		It("returns the stored post", func() {
			created := seed("Hello", "World", ptr(10), false, "PENDING", time.Now())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Title).To(Equal("Hello"))
		})

		It("maps a missing row to the domain error", func() {
			_, err := repo.GetByID(12345)
			Expect(err).To(MatchError(internal.ErrPostNotFound))
		})
	})

	Describe("List with visibility predicates", func() {
		var (
			employee approval.Caller
			now      time.Time
		)

		BeforeEach(func() {
			employee = approval.Caller{ID: 3, Role: approval.RoleEmployee, DepartmentID: ptr(10)}
			now = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

			// dept 10 private, dept 20 public, dept 20 private; all match "meeting"
			seed("Meeting notes A", "weekly meeting", ptr(10), false, "APPROVED", now.Add(-1*time.Hour))
			seed("Meeting notes B", "company meeting", ptr(20), true, "APPROVED", now.Add(-2*time.Hour))
			seed("Meeting notes C", "private meeting", ptr(20), false, "APPROVED", now.Add(-3*time.Hour))
		})

		It("shows employees only public posts by default", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{}, []string{"title", "content"})

			posts, total, err := repo.List(pred, approval.Page{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(posts[0].Title).To(Equal("Meeting notes B"))
		})

		It("unions department and public posts without leaking foreign private posts", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{
				DepartmentAccess: ptr(10),
				Search:           "meeting",
			}, []string{"title", "content"})

			posts, total, err := repo.List(pred, approval.Page{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))

			titles := []string{posts[0].Title, posts[1].Title}
			Expect(titles).To(ConsistOf("Meeting notes A", "Meeting notes B"))
		})

		It("returns exactly the public match when the search term misses the caller's department", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{
				DepartmentAccess: ptr(10),
				Search:           "company",
			}, []string{"title", "content"})

			posts, total, err := repo.List(pred, approval.Page{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(posts[0].Title).To(Equal("Meeting notes B"))
		})

		It("matches search terms case-insensitively", func() {
			pred := approval.VisibilityPredicate(employee, approval.ListFilters{
				DepartmentAccess: ptr(10),
				Search:           "MEETING",
			}, []string{"title", "content"})

			_, total, err := repo.List(pred, approval.Page{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
		})

		It("filters admin listings by status", func() {
			admin := approval.Caller{ID: 1, Role: approval.RoleAdmin}
			seed("Draft thing", "not yet reviewed", ptr(10), false, "PENDING", now)

			status := approval.StatusPending
			pred := approval.VisibilityPredicate(admin, approval.ListFilters{Status: &status}, []string{"title", "content"})

			posts, total, err := repo.List(pred, approval.Page{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(posts[0].Title).To(Equal("Draft thing"))
		})

		It("treats a nil department match as company-wide content", func() {
			seed("Company wide", "for everyone", nil, false, "APPROVED", now)

			pred := approval.VisibilityPredicate(employee, approval.ListFilters{
				DepartmentAccess:  ptr(10),
				IncludeAdminItems: true,
			}, []string{"title", "content"})

			posts, total, err := repo.List(pred, approval.Page{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))

			var titles []string
			for _, p := range posts {
				titles = append(titles, p.Title)
			}
			Expect(titles).To(ContainElement("Company wide"))
		})
	})

	Describe("List pagination and ordering", func() {
		BeforeEach(func() {
			base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 5; i++ {
				seed(
					[]string{"First", "Second", "Third", "Fourth", "Fifth"}[i],
					"body",
					nil,
					true,
					"APPROVED",
					base.Add(time.Duration(i)*time.Hour),
				)
			}
		})

		It("orders by updated_at descending", func() {
			posts, total, err := repo.List(approval.Predicate{}, approval.Page{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(5)))
			Expect(posts[0].Title).To(Equal("Fifth"))
			Expect(posts[4].Title).To(Equal("First"))
		})

		It("pages deterministically with a stable total", func() {
			first, total, err := repo.List(approval.Predicate{}, approval.Page{Page: 1, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(5)))
			Expect(first).To(HaveLen(2))

			second, total2, err := repo.List(approval.Predicate{}, approval.Page{Page: 2, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(total2).To(Equal(int64(5)))
			Expect(second).To(HaveLen(2))

			Expect(first[0].ID).NotTo(Equal(second[0].ID))
			Expect(first[1].ID).NotTo(Equal(second[1].ID))
		})

		It("reproduces the full result set when concatenating all pages", func() {
			pagination := approval.NewPagination(5, approval.Page{Page: 1, Limit: 2})

			seen := map[int64]bool{}
			var titles []string
			for p := 1; p <= pagination.Pages; p++ {
				posts, _, err := repo.List(approval.Predicate{}, approval.Page{Page: p, Limit: 2})
				Expect(err).NotTo(HaveOccurred())
				for _, item := range posts {
					Expect(seen[item.ID]).To(BeFalse())
					seen[item.ID] = true
					titles = append(titles, item.Title)
				}
			}

			Expect(seen).To(HaveLen(5))
			Expect(titles).To(Equal([]string{"Fifth", "Fourth", "Third", "Second", "First"}))
		})
	})

	Describe("UpdateReview and UpdateStatus", func() {
		It("writes the decision and preserves attribution on resubmit", func() {
			created := seed("Pending", "body", ptr(10), false, "PENDING", time.Now())

			reviewedAt := time.Now()
			Expect(repo.UpdateReview(created.ID, "REJECTED", 42, reviewedAt)).To(Succeed())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal("REJECTED"))
			Expect(*found.ReviewedByID).To(Equal(int64(42)))

			Expect(repo.UpdateStatus(created.ID, "PENDING")).To(Succeed())

			found, err = repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal("PENDING"))
			Expect(*found.ReviewedByID).To(Equal(int64(42)))
		})
	})
})
