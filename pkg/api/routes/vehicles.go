package routes

import (
	"github.com/fleetlens/fleetlens/pkg/dashboard"
	"github.com/fleetlens/fleetlens/pkg/upstream"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
)

func VehiclesRouter(router fiber.Router, builder *dashboard.Builder, holder *dashboard.SnapshotHolder, client *upstream.Client, defaultGroup string) {
	router.Get("/:number", func(c *fiber.Ctx) error {
		return getVehicle(c, builder, holder, client, defaultGroup)
	})
}

func getVehicle(c *fiber.Ctx, builder *dashboard.Builder, holder *dashboard.SnapshotHolder, client *upstream.Client, defaultGroup string) error {
	vehicleNumber := c.Params("number")

	snapshot := holder.Latest()

	if snapshot == nil {
		var err error
		snapshot, err = builder.Build(c.Context(), c.Query("group", defaultGroup))
		if err != nil {
			c.SendStatus(fiber.StatusBadGateway)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		holder.Store(snapshot)
	}

	row := snapshot.FindRow(vehicleNumber)
	if row == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Vehicle matching Vehicle Number",
		})
	}

	rowReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, row)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce Vehicle",
		})
	}

	// No remark is normal, a failed lookup just logs - the row still renders.
	remark, err := client.GetLatestRemark(c.Context(), row.Vehicle.PrimaryIdentifier)
	if err != nil {
		log.Error().Err(err).Str("vehicle", vehicleNumber).Msg("Failed to fetch latest remark")
	}

	return c.JSON(fiber.Map{
		"vehicle": rowReduced,
		"remark":  remark,
	})
}
