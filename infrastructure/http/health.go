package http

import (
	"net/http"
	"os"

	"github.com/shirou/gopsutil/process"
)

type healthResponse struct {
	Status     string  `json:"status"`
	Pid        int32   `json:"pid"`
	RssBytes   uint64  `json:"rss_bytes"`
	CPUPercent float64 `json:"cpu_percent"`
}

// HandleHealth reports liveness together with the process footprint.
// A failing probe of the process stats still answers ok.
func HandleHealth() http.HandlerFunc {
	pid := int32(os.Getpid())
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Pid: pid}
		if p, err := process.NewProcess(pid); err == nil {
			if memInfo, err := p.MemoryInfo(); err == nil {
				resp.RssBytes = memInfo.RSS
			}
			if cpu, err := p.CPUPercent(); err == nil {
				resp.CPUPercent = cpu
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
