package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// DriveService stores images in a Google Drive folder, one subfolder per upload folder
type DriveService struct {
	client       *drive.Service
	rootFolderID string

	mu        sync.Mutex
	subfolder map[string]string // folder name -> Drive folder id
}

// Ensure DriveService implements ImageStoreInterface
var _ ImageStoreInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string, rootFolderID string) (*DriveService, error) {
	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(drive.DriveScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:       driveService,
		rootFolderID: rootFolderID,
		subfolder:    make(map[string]string),
	}, nil
}

// folderID returns the id of a subfolder of the root folder, creating it the first time
func (ds *DriveService) folderID(ctx context.Context, name string) (string, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if id, ok := ds.subfolder[name]; ok {
		return id, nil
	}

	query := fmt.Sprintf("'%s' in parents and name = '%s' and mimeType = '%s' and trashed = false",
		ds.rootFolderID, name, folderMimeType)
	r, err := ds.client.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up folder %s: %w", name, err)
	}
	if len(r.Files) > 0 {
		ds.subfolder[name] = r.Files[0].Id
		return r.Files[0].Id, nil
	}

	created, err := ds.client.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMimeType,
		Parents:  []string{ds.rootFolderID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", name, err)
	}

	log.Printf("📁 Created Drive folder %s (%s)", name, created.Id)
	ds.subfolder[name] = created.Id
	return created.Id, nil
}

// Upload creates the file in Drive and makes it readable by anyone with the link
func (ds *DriveService) Upload(ctx context.Context, folder string, fileName string, data []byte) (StoredImage, error) {
	parentID, err := ds.folderID(ctx, folder)
	if err != nil {
		return StoredImage{}, err
	}

	file, err := ds.client.Files.Create(&drive.File{
		Name:     fileName,
		MimeType: "image/jpeg",
		Parents:  []string{parentID},
	}).Media(bytes.NewReader(data)).Fields("id, name, size").Context(ctx).Do()
	if err != nil {
		return StoredImage{}, fmt.Errorf("failed to upload %s: %w", fileName, err)
	}

	_, err = ds.client.Permissions.Create(file.Id, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		log.Printf("⚠️ Uploaded %s but could not share it: %v", file.Id, err)
	}

	log.Printf("✅ Uploaded %s/%s to Drive (%s, %d bytes)", folder, fileName, file.Id, len(data))
	return StoredImage{FileID: file.Id, Bytes: len(data)}, nil
}

// Download fetches the raw content of a Drive file
func (ds *DriveService) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}
