package ports

import "context"

// ImageStore define el puerto de salida para el almacenamiento de fotos de
// producto. Cualquier adaptador (MinIO, disco local, mock) debe implementar
// esta interfaz; la aplicación solo conoce este contrato (DIP).
type ImageStore interface {
	// Save persiste los bytes de la imagen y devuelve la ruta/clave con la
	// que quedó registrada. El nombre original solo se usa para conservar
	// la extensión.
	Save(ctx context.Context, data []byte, originalFilename string) (string, error)
	// Delete elimina la imagen por la ruta devuelta en Save.
	Delete(ctx context.Context, path string) error
	// URL devuelve una URL temporal de lectura para la imagen.
	URL(ctx context.Context, path string) (string, error)
}
