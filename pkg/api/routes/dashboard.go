package routes

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fleetlens/fleetlens/pkg/alerts"
	"github.com/fleetlens/fleetlens/pkg/archive"
	"github.com/fleetlens/fleetlens/pkg/dashboard"
	"github.com/fleetlens/fleetlens/pkg/fleet"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
)

func DashboardRouter(router fiber.Router, builder *dashboard.Builder, holder *dashboard.SnapshotHolder, publisher *alerts.Publisher, defaultGroup string) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getDashboard(c, builder, holder, publisher, defaultGroup)
	})
	router.Get("/branches", func(c *fiber.Ctx) error {
		return getBranches(c, builder, holder, publisher, defaultGroup)
	})
	router.Get("/export", func(c *fiber.Ctx) error {
		return getExport(c, builder, holder, publisher, defaultGroup)
	})
	router.Get("/history", func(c *fiber.Ctx) error {
		return getHistory(c, defaultGroup)
	})
}

// refreshSnapshot runs one full build. On success the snapshot is stored for
// the secondary routes, archived, and evaluated for alerts - the last two
// never fail the response.
func refreshSnapshot(c *fiber.Ctx, builder *dashboard.Builder, holder *dashboard.SnapshotHolder, publisher *alerts.Publisher, defaultGroup string) (*dashboard.Snapshot, error) {
	group := c.Query("group", defaultGroup)

	snapshot, err := builder.Build(c.Context(), group)
	if err != nil {
		return nil, err
	}

	holder.Store(snapshot)

	if err := archive.RecordSnapshot(context.Background(), snapshot); err != nil {
		log.Error().Err(err).Str("group", group).Msg("Failed to archive snapshot")
	}

	if publisher != nil {
		publisher.Evaluate(snapshot)
	}

	return snapshot, nil
}

func getDashboard(c *fiber.Ctx, builder *dashboard.Builder, holder *dashboard.SnapshotHolder, publisher *alerts.Publisher, defaultGroup string) error {
	snapshot, err := refreshSnapshot(c, builder, holder, publisher, defaultGroup)
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	snapshotReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, snapshot)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Snapshot",
		})
	}

	return c.JSON(snapshotReduced)
}

func getBranches(c *fiber.Ctx, builder *dashboard.Builder, holder *dashboard.SnapshotHolder, publisher *alerts.Publisher, defaultGroup string) error {
	snapshot := holder.Latest()

	if snapshot == nil {
		var err error
		snapshot, err = refreshSnapshot(c, builder, holder, publisher, defaultGroup)
		if err != nil {
			c.SendStatus(fiber.StatusBadGateway)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.JSON(snapshot.Branches)
}

func getExport(c *fiber.Ctx, builder *dashboard.Builder, holder *dashboard.SnapshotHolder, publisher *alerts.Publisher, defaultGroup string) error {
	snapshot := holder.Latest()

	if snapshot == nil {
		var err error
		snapshot, err = refreshSnapshot(c, builder, holder, publisher, defaultGroup)
		if err != nil {
			c.SendStatus(fiber.StatusBadGateway)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	vehicles := []fleet.Vehicle{}
	for _, status := range fleet.AllTripStatuses {
		for _, row := range snapshot.Buckets[status] {
			vehicles = append(vehicles, row.Vehicle)
		}
	}
	for _, row := range snapshot.Unclassified {
		vehicles = append(vehicles, row.Vehicle)
	}

	csvContent, err := dashboard.ExportCSV(vehicles)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not generate CSV export",
		})
	}

	filename := fmt.Sprintf("fleet_export_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return c.SendString(csvContent)
}

func getHistory(c *fiber.Ctx, defaultGroup string) error {
	group := c.Query("group", defaultGroup)
	count, err := strconv.Atoi(c.Query("count", "48"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "count must be a number",
		})
	}

	entries, err := archive.GetHistory(c.Context(), group, count)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not load snapshot history",
		})
	}

	return c.JSON(entries)
}
