package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"rentrix_backend/internals/configs"
	database "rentrix_backend/internals/databases"
	roomModel "rentrix_backend/internals/features/rooms/rooms/model"
	roomService "rentrix_backend/internals/features/rooms/rooms/service"
	authHelper "rentrix_backend/internals/features/users/auth/helper"
	"rentrix_backend/internals/seeds"
	seedUsers "rentrix_backend/internals/seeds/users"
)

func getDB() *gorm.DB {
	database.ConnectDB()
	return database.DB
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := getDB()
			defer database.Close()

			tables, err := database.MigrateTables(db)
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			for _, t := range tables {
				fmt.Printf("migrated  %s\n", t)
			}
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users and rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			db := getDB()
			defer database.Close()

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			return seeds.RunAllSeeds(db, dir)
		},
	}
	cmd.Flags().String("dir", "internals/seeds", "Directory holding the seed JSON files")
	return cmd
}

func createLandlordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-landlord",
		Short: "Create a landlord (staff) account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			email, _ := cmd.Flags().GetString("email")
			first, _ := cmd.Flags().GetString("first-name")
			last, _ := cmd.Flags().GetString("last-name")

			username = strings.TrimSpace(username)
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			if err := authHelper.ValidateNewPassword(password, username); err != nil {
				return err
			}

			db := getDB()
			defer database.Close()

			u, err := seedUsers.CreateUser(db, seedUsers.UserSeed{
				UserName:  username,
				Email:     email,
				Password:  password,
				FirstName: first,
				LastName:  last,
				IsStaff:   true,
			})
			if err != nil {
				return fmt.Errorf("create landlord: %w", err)
			}
			fmt.Printf("landlord %s created (id=%s)\n", u.UserName, u.ID)
			return nil
		},
	}
	cmd.Flags().String("username", "", "Login name")
	cmd.Flags().String("password", "", "Initial password")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Recount occupants and status of every room",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := getDB()
			defer database.Close()

			var n int
			err := db.Transaction(func(tx *gorm.DB) error {
				var err error
				n, err = roomService.ReconcileAll(tx)
				return err
			})
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}
			fmt.Printf("reconciled %d rooms\n", n)

			// drop stale cached rows when the API runs with redis
			if err := roomService.InitRoomCache(cmd.Context(),
				configs.GetEnv("REDIS_ADDR"), configs.GetEnv("REDIS_PASSWORD"), configs.GetEnvInt("REDIS_DB", 0), configs.Log,
			); err == nil {
				var rooms []roomModel.RoomModel
				if err := db.Select("room_id").Find(&rooms).Error; err == nil {
					roomService.InvalidateRooms(cmd.Context(), rooms)
				}
			}
			return nil
		},
	}
}
