package domain

import (
	"context"
	"errors"

	"github.com/inkwell-gg/backend/internal/entity"
	"github.com/inkwell-gg/backend/internal/model"
	"github.com/inkwell-gg/backend/internal/repository"
	"github.com/inkwell-gg/backend/pkg/errorx"
	"github.com/inkwell-gg/backend/pkg/locale"
	"github.com/inkwell-gg/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ProjectDomain interface {
	Create(ctx context.Context, req *model.CreateProjectRequest) (*model.CreateProjectResponse, error)
	List(ctx context.Context, req *model.ListProjectsRequest) (*model.ListProjectsResponse, error)
	Rename(ctx context.Context, req *model.RenameProjectRequest) (*model.RenameProjectResponse, error)
	Complete(ctx context.Context, req *model.CompleteProjectRequest) (*model.CompleteProjectResponse, error)
	Delete(ctx context.Context, req *model.DeleteProjectRequest) (*model.DeleteProjectResponse, error)
}

type projectDomain struct {
	projectRepo repository.ProjectRepository
}

func NewProjectDomain(projectRepo repository.ProjectRepository) ProjectDomain {
	return &projectDomain{projectRepo: projectRepo}
}

// get resolves the caller's project by shortname.
func (d *projectDomain) get(ctx context.Context, shortname string) (*entity.Project, error) {
	project, err := d.projectRepo.GetByShortname(ctx, xcontext.RequestUserID(ctx), shortname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound,
				locale.Text(locale.Default, "project:err:noexists", shortname))
		}

		xcontext.Logger(ctx).Errorf("Cannot get project: %v", err)
		return nil, errorx.Unknown
	}

	return project, nil
}

func (d *projectDomain) Create(
	ctx context.Context, req *model.CreateProjectRequest,
) (*model.CreateProjectResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if _, err := d.projectRepo.GetByShortname(ctx, userID, req.Shortname); err == nil {
		return nil, errorx.New(errorx.AlreadyExists,
			locale.Text(locale.Default, "project:err:exists", req.Shortname))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check project: %v", err)
		return nil, errorx.Unknown
	}

	project := &entity.Project{
		SnowFlakeBase: entity.SnowFlakeBase{ID: entity.NewID()},
		UserID:        userID,
		Shortname:     req.Shortname,
		Name:          req.Name,
	}

	if err := d.projectRepo.Create(ctx, project); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateProjectResponse{
		ID:    project.ID,
		Reply: locale.Text(locale.Default, "project:created", project.Name),
	}, nil
}

func (d *projectDomain) List(
	ctx context.Context, req *model.ListProjectsRequest,
) (*model.ListProjectsResponse, error) {
	projects, err := d.projectRepo.GetByUser(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list projects: %v", err)
		return nil, errorx.Unknown
	}

	summaries := make([]model.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, model.ProjectSummary{
			Shortname: p.Shortname,
			Name:      p.Name,
			Words:     p.Words,
			Completed: p.Completed,
		})
	}

	return &model.ListProjectsResponse{Projects: summaries}, nil
}

func (d *projectDomain) Rename(
	ctx context.Context, req *model.RenameProjectRequest,
) (*model.RenameProjectResponse, error) {
	project, err := d.get(ctx, req.Shortname)
	if err != nil {
		return nil, err
	}

	shortname := req.NewShortname
	if shortname == "" {
		shortname = project.Shortname
	}

	name := req.NewName
	if name == "" {
		name = project.Name
	}

	if err := d.projectRepo.Rename(ctx, project.ID, shortname, name); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rename project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RenameProjectResponse{
		Reply: locale.Text(locale.Default, "project:renamed", name),
	}, nil
}

func (d *projectDomain) Complete(
	ctx context.Context, req *model.CompleteProjectRequest,
) (*model.CompleteProjectResponse, error) {
	project, err := d.get(ctx, req.Shortname)
	if err != nil {
		return nil, err
	}

	if err := d.projectRepo.SetCompleted(ctx, project.ID, true); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CompleteProjectResponse{
		Reply: locale.Text(locale.Default, "project:completed", project.Name),
	}, nil
}

func (d *projectDomain) Delete(
	ctx context.Context, req *model.DeleteProjectRequest,
) (*model.DeleteProjectResponse, error) {
	project, err := d.get(ctx, req.Shortname)
	if err != nil {
		return nil, err
	}

	if err := d.projectRepo.Delete(ctx, project.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete project: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteProjectResponse{
		Reply: locale.Text(locale.Default, "project:deleted", project.Name),
	}, nil
}
