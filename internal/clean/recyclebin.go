package clean

// RecycleBinInfo is the Recycle Bin content summed over all drives.
type RecycleBinInfo struct {
	Size  int64 `json:"size"`
	Items int64 `json:"items"`
}
