package api

import "github.com/hsnony97-cyber/Load-Ext/internal/jobstore"

type CreateBatchRequest struct {
	Inputs    []string `json:"inputs"`
	OutputDir string   `json:"output_dir,omitempty"`
	Format    string   `json:"format,omitempty"`
	Workers   int      `json:"workers,omitempty"`
	DryRun    bool     `json:"dry_run,omitempty"`
}

type CreateBatchResponse struct {
	ID     string   `json:"id"`
	Object string   `json:"object"`
	Status string   `json:"status"`
	Inputs []string `json:"inputs"`
}

type BatchResponse struct {
	Object string `json:"object"`
	jobstore.Batch
}

type BatchList struct {
	Object string           `json:"object"`
	Data   []jobstore.Batch `json:"data"`
}

type LayoutInfo struct {
	Name    string   `json:"name"`
	Version int64    `json:"version"`
	Size    int      `json:"size"`
	Fields  []string `json:"fields"`
	Descr   string   `json:"descr"`
}

type LayoutList struct {
	Object string       `json:"object"`
	Data   []LayoutInfo `json:"data"`
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}
