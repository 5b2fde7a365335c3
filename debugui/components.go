package debugui

type GamePanel struct {
	source SnapshotSource
}

type PieceStatsPanel struct {
	source        SnapshotSource
	sortColumn    int
	sortAscending bool
}

type RunnerPanel struct {
	source  StatsSource
	history *frameHistory
	timer   *FrameTimer
}
