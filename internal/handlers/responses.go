package handlers

import (
	"time"

	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/proofing"
	"fotoproof-backend/internal/services"
	"github.com/dustin/go-humanize"
)

func toGalleryResponse(g *models.Gallery, shareURL func(string) string) models.GalleryResponse {
	resp := models.GalleryResponse{
		ID:            g.ID.String(),
		Title:         g.Title,
		Description:   g.Description.String,
		ClientName:    g.ClientName,
		ClientEmail:   g.ClientEmail,
		IsPublic:      g.IsPublic,
		HasPassword:   g.HasPassword(),
		Password:      g.Password.String,
		CoverImageURL: g.CoverImageURL.String,
		ShareURL:      shareURL(g.ID.String()),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
	if g.ExpiresAt.Valid {
		t := g.ExpiresAt.Time
		resp.ExpiresAt = &t
	}
	return resp
}

func toPhotoResponse(p models.Photo) models.PhotoResponse {
	resp := models.PhotoResponse{
		ID:           p.ID.String(),
		FileURL:      p.FileURL,
		ThumbnailURL: p.ThumbnailURL.String,
		FileName:     p.FileName,
		OrderIndex:   p.OrderIndex,
		CreatedAt:    p.CreatedAt,
	}
	if p.FileSize.Valid {
		resp.FileSize = p.FileSize.Int64
		resp.FileSizeHuman = humanize.Bytes(uint64(p.FileSize.Int64))
	}
	return resp
}

func toPhotoResponses(photos []models.Photo) []models.PhotoResponse {
	out := make([]models.PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, toPhotoResponse(p))
	}
	return out
}

func toAccessResponse(a *services.ShareAccess) *models.AccessResponse {
	if a == nil {
		return nil
	}
	return &models.AccessResponse{
		AccessToken: a.Token,
		TokenType:   "Bearer",
		ExpiresAt:   a.ExpiresAt.UTC().Truncate(time.Second),
	}
}

func toSelectionsResponse(galleryID string, groups []proofing.Group[models.SelectionWithPhoto]) models.SelectionsResponse {
	resp := models.SelectionsResponse{
		GalleryID: galleryID,
		Clients:   make([]models.ClientSelectionsGroup, 0, len(groups)),
	}
	for _, g := range groups {
		group := models.ClientSelectionsGroup{
			ClientEmail: g.Email,
			Count:       len(g.Items),
			Selections:  make([]models.SelectionResponse, 0, len(g.Items)),
		}
		for _, s := range g.Items {
			if group.ClientName == "" {
				group.ClientName = s.ClientName
			}
			group.Selections = append(group.Selections, models.SelectionResponse{
				ID:           s.ID.String(),
				PhotoID:      s.PhotoID.String(),
				FileName:     s.FileName,
				FileURL:      s.FileURL,
				ThumbnailURL: s.ThumbnailURL.String,
				Notes:        s.Notes.String,
				SelectedAt:   s.SelectedAt,
			})
		}
		resp.TotalSelections += group.Count
		resp.Clients = append(resp.Clients, group)
	}
	return resp
}

func toExportFormats(formats []proofing.ExportFormat) []models.ExportFormat {
	out := make([]models.ExportFormat, 0, len(formats))
	for _, f := range formats {
		out = append(out, models.ExportFormat{
			ID:       f.ID,
			Title:    f.Title,
			Filename: f.Filename,
			Content:  f.Content,
		})
	}
	return out
}
