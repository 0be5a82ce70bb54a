package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"battery-arbitrage/internal/api/models"
	"battery-arbitrage/internal/data"
)

// FileLister lists the price files a simulation would read.
type FileLister interface {
	ListFiles() ([]data.FileInfo, error)
}

// ListDatasets returns a handler for GET /api/v1/datasets
func ListDatasets(files FileLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		infos, err := files.ListFiles()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.NewError("DATASETS_LOAD_ERROR", err.Error()))
			return
		}

		datasets := make([]models.DatasetInfo, len(infos))
		for i, f := range infos {
			datasets[i] = models.DatasetInfo{Name: f.Name, SizeBytes: f.Size, ModTime: f.ModTime}
		}
		c.JSON(http.StatusOK, gin.H{
			"datasets": datasets,
			"count":    len(datasets),
		})
	}
}
