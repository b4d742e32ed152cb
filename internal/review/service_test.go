package review_test

import (
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/portal-management/internal"
	"github.com/frahmantamala/portal-management/internal/approval"
	reviewDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/review"
	"github.com/frahmantamala/portal-management/internal/document"
	"github.com/frahmantamala/portal-management/internal/post"
	"github.com/frahmantamala/portal-management/internal/review"
)

func TestReviewService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Review Service Suite")
}

type mockCommentRepository struct {
	comments []*reviewDatamodel.Comment
	nextID   int64
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{nextID: 1}
}

func (m *mockCommentRepository) Create(c *reviewDatamodel.Comment) error {
	c.ID = m.nextID
	m.nextID++
	copied := *c
	m.comments = append(m.comments, &copied)
	return nil
}

func (m *mockCommentRepository) ListForPost(postID int64) ([]*reviewDatamodel.Comment, error) {
	var out []*reviewDatamodel.Comment
	for _, c := range m.comments {
		if c.PostID != nil && *c.PostID == postID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockCommentRepository) ListForDocument(documentID int64) ([]*reviewDatamodel.Comment, error) {
	var out []*reviewDatamodel.Comment
	for _, c := range m.comments {
		if c.DocumentID != nil && *c.DocumentID == documentID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

// mockPostGetter mimics the content service: resolves the post, then asks
// the authorization rules whether the caller may see it.
type mockPostGetter struct {
	posts map[int64]*post.Post
}

func (m *mockPostGetter) GetByID(caller approval.Caller, id int64, deptAccess *int64) (*post.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, internal.ErrPostNotFound
	}
	if err := approval.CanView(caller, p.Facts(), deptAccess); err != nil {
		return nil, err
	}
	return p, nil
}

type mockDocumentGetter struct {
	documents map[int64]*document.Document
}

func (m *mockDocumentGetter) GetByID(caller approval.Caller, id int64, deptAccess *int64) (*document.Document, error) {
	d, ok := m.documents[id]
	if !ok {
		return nil, internal.ErrDocumentNotFound
	}
	if err := approval.CanView(caller, d.Facts(), deptAccess); err != nil {
		return nil, err
	}
	return d, nil
}

var _ = Describe("Review Service", func() {
	var (
		repo    *mockCommentRepository
		posts   *mockPostGetter
		docs    *mockDocumentGetter
		service *review.Service

		admin    approval.Caller
		deptHead approval.Caller
		employee approval.Caller
	)

	ptr := func(v int64) *int64 { return &v }

	BeforeEach(func() {
		repo = newMockCommentRepository()

		admin = approval.Caller{ID: 1, Role: approval.RoleAdmin}
		deptHead = approval.Caller{ID: 2, Role: approval.RoleDepartmentHead, DepartmentID: ptr(10)}
		employee = approval.Caller{ID: 3, Role: approval.RoleEmployee, DepartmentID: ptr(10)}

		posts = &mockPostGetter{posts: map[int64]*post.Post{
			1: {ID: 1, Title: "Pending post", AuthorID: deptHead.ID, DepartmentID: ptr(10), Status: approval.StatusPending},
			2: {ID: 2, Title: "Public post", AuthorID: admin.ID, IsPublic: true, Status: approval.StatusApproved},
		}}
		docs = &mockDocumentGetter{documents: map[int64]*document.Document{
			1: {ID: 1, Title: "Handbook", UploadedByID: deptHead.ID, DepartmentID: ptr(10), Status: approval.StatusPending},
		}}

		service = review.NewService(repo, posts, docs, slog.Default())
	})

	Describe("AddPostComment", func() {
		It("records reviewer feedback on a pending post", func() {
			comment, err := service.AddPostComment(admin, 1, review.CreateCommentDTO{Content: "Please shorten the title."})

			Expect(err).NotTo(HaveOccurred())
			Expect(comment.ID).NotTo(BeZero())
			Expect(*comment.PostID).To(Equal(int64(1)))
			Expect(comment.UserID).To(Equal(admin.ID))
		})

		It("lets the author reply on their own content", func() {
			_, err := service.AddPostComment(deptHead, 1, review.CreateCommentDTO{Content: "Done, shortened."})
			Expect(err).NotTo(HaveOccurred())
		})

		It("hides invisible posts behind the same error as missing ones", func() {
			_, err := service.AddPostComment(employee, 1, review.CreateCommentDTO{Content: "hi"})
			Expect(err).To(MatchError(internal.ErrForbiddenAction))
		})

		It("rejects empty content", func() {
			_, err := service.AddPostComment(admin, 1, review.CreateCommentDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("surfaces a missing post", func() {
			_, err := service.AddPostComment(admin, 99, review.CreateCommentDTO{Content: "hi"})
			Expect(err).To(MatchError(internal.ErrPostNotFound))
		})
	})

	Describe("ListPostComments", func() {
		It("returns only the post's comments to visible callers", func() {
			_, err := service.AddPostComment(admin, 1, review.CreateCommentDTO{Content: "first"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.AddPostComment(admin, 2, review.CreateCommentDTO{Content: "elsewhere"})
			Expect(err).NotTo(HaveOccurred())

			comments, err := service.ListPostComments(deptHead, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(comments).To(HaveLen(1))
			Expect(comments[0].Content).To(Equal("first"))
		})

		It("applies visibility to listing too", func() {
			_, err := service.ListPostComments(employee, 1)
			Expect(err).To(MatchError(internal.ErrForbiddenAction))

			_, err = service.ListPostComments(employee, 2)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("document comments", func() {
		It("records and lists feedback on a document", func() {
			created, err := service.AddDocumentComment(admin, 1, review.CreateCommentDTO{Content: "Wrong file version."})
			Expect(err).NotTo(HaveOccurred())
			Expect(*created.DocumentID).To(Equal(int64(1)))
			Expect(created.PostID).To(BeNil())

			comments, err := service.ListDocumentComments(deptHead, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(comments).To(HaveLen(1))
		})

		It("keeps invisible documents closed", func() {
			_, err := service.AddDocumentComment(employee, 1, review.CreateCommentDTO{Content: "hi"})
			Expect(err).To(MatchError(internal.ErrForbiddenAction))
		})
	})

	Describe("comment ordering", func() {
		It("preserves creation order from the repository", func() {
			for _, content := range []string{"one", "two", "three"} {
				_, err := service.AddPostComment(admin, 1, review.CreateCommentDTO{Content: content})
				Expect(err).NotTo(HaveOccurred())
				time.Sleep(time.Millisecond)
			}

			comments, err := service.ListPostComments(admin, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(comments[0].Content).To(Equal("one"))
			Expect(comments[2].Content).To(Equal("three"))
		})
	})
})
