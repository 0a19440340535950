package controllers

import (
	"errors"
	"net/http"

	"jewel-lending/backend/app/dto"
	"jewel-lending/backend/app/services"
	"jewel-lending/backend/app/storage"
)

type CatalogController struct {
	Base
	Jewels *services.JewelService
	Images *storage.DiskStore
	// MaxUpload caps the request body of the add/edit forms.
	MaxUpload int64
}

func NewCatalogController(base Base, jewels *services.JewelService, images *storage.DiskStore, maxUpload int64) *CatalogController {
	return &CatalogController{Base: base, Jewels: jewels, Images: images, MaxUpload: maxUpload}
}

func (c *CatalogController) Index(w http.ResponseWriter, r *http.Request) {
	jewels, err := c.Jewels.ListAvailable(r.Context())
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "index", "", jewels)
}

func (c *CatalogController) AdminManage(w http.ResponseWriter, r *http.Request) {
	jewels, err := c.Jewels.ListAll(r.Context())
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "admin_manage", "Manage Jewels", jewels)
}

func (c *CatalogController) AddJewel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		c.render(w, r, http.StatusOK, "add_jewel", "Add Jewel", nil)
		return
	}
	in, img, msg := c.readForm(w, r)
	if msg != "" {
		c.Sessions.Flash(r, msg)
		c.render(w, r, http.StatusOK, "add_jewel", "Add Jewel", nil)
		return
	}
	if img != nil {
		defer img.close()
	}
	_, err := c.Jewels.Create(r.Context(), in, img.upload())
	if msg := jewelFormMessage(err); msg != "" {
		c.Sessions.Flash(r, msg)
		c.render(w, r, http.StatusOK, "add_jewel", "Add Jewel", nil)
		return
	}
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.redirect(w, r, "/admin/manage", "Jewel added successfully!")
}

func (c *CatalogController) EditJewel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "jewel_id")
	if !ok {
		c.notFound(w, r)
		return
	}
	jewel, err := c.Jewels.Get(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if r.Method != http.MethodPost {
		c.render(w, r, http.StatusOK, "edit_jewel", "Edit Jewel", jewel)
		return
	}
	in, img, msg := c.readForm(w, r)
	if msg != "" {
		c.Sessions.Flash(r, msg)
		c.render(w, r, http.StatusOK, "edit_jewel", "Edit Jewel", jewel)
		return
	}
	if img != nil {
		defer img.close()
	}
	_, err = c.Jewels.Update(r.Context(), id, in, img.upload())
	if msg := jewelFormMessage(err); msg != "" {
		c.Sessions.Flash(r, msg)
		c.render(w, r, http.StatusOK, "edit_jewel", "Edit Jewel", jewel)
		return
	}
	if err != nil {
		c.fail(w, r, err)
		return
	}
	c.redirect(w, r, "/admin/manage", "Jewel updated!")
}

func (c *CatalogController) DeleteJewel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "jewel_id")
	if !ok {
		c.notFound(w, r)
		return
	}
	err := c.Jewels.Delete(r.Context(), id)
	if msg := conflictMessage(err); msg != "" {
		c.redirect(w, r, "/admin/manage", msg)
		return
	}
	if err != nil {
		c.fail(w, r, err)
		return
	}
	c.redirect(w, r, "/admin/manage", "Jewel deleted!")
}

func (c *CatalogController) UploadedFile(w http.ResponseWriter, r *http.Request) {
	p, err := c.Images.Path(muxVar(r, "filename"))
	if err != nil {
		c.notFound(w, r)
		return
	}
	http.ServeFile(w, r, p)
}

const (
	invalidJewelMessage  = "Name is required and price, fine and count must not be negative."
	imageTooLargeMessage = "Image is too large."
)

// jewelFormMessage maps service errors that the admin can fix by editing the form.
func jewelFormMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return invalidJewelMessage
	case errors.Is(err, storage.ErrTooLarge):
		return imageTooLargeMessage
	}
	return ""
}

type formImage struct {
	dto.JewelForm
}

func (f *formImage) upload() *services.ImageUpload {
	if f == nil || f.Image == nil {
		return nil
	}
	return &services.ImageUpload{Filename: f.ImageHeader.Filename, Body: f.Image}
}

func (f *formImage) close() {
	if f.Image != nil {
		_ = f.Image.Close()
	}
}

// readForm parses the multipart add/edit form. A non-empty msg is a user-facing
// validation message and nothing should be saved.
func (c *CatalogController) readForm(w http.ResponseWriter, r *http.Request) (services.JewelInput, *formImage, string) {
	if c.MaxUpload > 0 {
		// room for the text fields on top of the image itself
		r.Body = http.MaxBytesReader(w, r.Body, c.MaxUpload+1<<20)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return services.JewelInput{}, nil, imageTooLargeMessage
		}
		return services.JewelInput{}, nil, "Invalid form submission."
	}
	form, err := dto.ParseJewelForm(r)
	if err != nil {
		return services.JewelInput{}, nil, "Invalid " + err.Error() + "."
	}
	in := services.JewelInput{
		Name: form.Name, Category: form.Category, Description: form.Description,
		PricePerHour: form.PricePerHour, FinePerHour: form.FinePerHour, Count: form.Count,
	}
	if form.Image == nil {
		return in, nil, ""
	}
	return in, &formImage{JewelForm: form}, ""
}
