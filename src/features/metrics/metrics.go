package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "soundvault"

var TotalAlbumCascades = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "total_album_cascades",
		Help:      "Total album delete cascades executed",
		Namespace: Namespace,
	},
)

var TotalTrackCascades = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "total_track_cascades",
		Help:      "Total track delete cascades executed",
		Namespace: Namespace,
	},
)

var TotalFavoriteAdds = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "total_favorite_adds",
		Help:      "Total successful favorite additions",
		Namespace: Namespace,
	},
)

var TotalSearches = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "total_searches",
		Help:      "Total cross-collection searches issued",
		Namespace: Namespace,
	},
)

var TotalUploads = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "total_uploads",
		Help:      "Total blobs stored in the file store",
		Namespace: Namespace,
	},
)

var TotalListens = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      "total_listens",
		Help:      "Total listen counter increments",
		Namespace: Namespace,
	},
)
