package ports

import "context"

// UploadedImage resultado de subir un comprobante al servicio externo.
type UploadedImage struct {
	URL      string // URL pública (https)
	PublicID string // identificador externo, necesario para borrar
}

// ImageUploader define el puerto de salida hacia el servicio de imágenes
// (Cloudinary en producción, fake en tests). Siguiendo DIP, la aplicación
// solo conoce este contrato de dos operaciones.
type ImageUploader interface {
	// Upload sube los bytes de la imagen a la carpeta indicada.
	// El contexto debe llevar timeout: es una llamada de red externa.
	Upload(ctx context.Context, data []byte, filename, folder string) (*UploadedImage, error)
	// Delete elimina la imagen por su ID externo.
	Delete(ctx context.Context, publicID string) error
}
