package postgres

import (
	"github.com/frahmantamala/portal-management/internal"
	departmentDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/department"
	documentDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/document"
	postDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/post"
	userDatamodel "github.com/frahmantamala/portal-management/internal/core/datamodel/user"
	"github.com/frahmantamala/portal-management/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(d *departmentDatamodel.Department) error {
	return r.db.Create(d).Error
}

func (r *DepartmentRepository) GetByID(id int64) (*departmentDatamodel.Department, error) {
	var d departmentDatamodel.Department
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) GetByName(name string) (*departmentDatamodel.Department, error) {
	var d departmentDatamodel.Department
	err := r.db.Where("name = ?", name).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) List() ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *DepartmentRepository) Update(d *departmentDatamodel.Department) error {
	return r.db.Save(d).Error
}

func (r *DepartmentRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&departmentDatamodel.Department{}).Error
}

func (r *DepartmentRepository) CountUsers(id int64) (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("department_id = ?", id).
		Count(&count).Error
	return count, err
}

// CountContent sums posts and documents still attached to the department.
func (r *DepartmentRepository) CountContent(id int64) (int64, error) {
	var posts int64
	if err := r.db.Model(&postDatamodel.Post{}).
		Where("department_id = ?", id).
		Count(&posts).Error; err != nil {
		return 0, err
	}

	var documents int64
	if err := r.db.Model(&documentDatamodel.Document{}).
		Where("department_id = ?", id).
		Count(&documents).Error; err != nil {
		return 0, err
	}

	return posts + documents, nil
}
