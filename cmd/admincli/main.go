package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"casemall_v1_202608/internal/model"
	"casemall_v1_202608/internal/repository"
	"casemall_v1_202608/internal/service"
	"casemall_v1_202608/pkg/config"
	"casemall_v1_202608/pkg/database"
)

// 管理员账号只能从命令行创建，后台没有开放注册接口
func main() {
	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	app := &cli.App{
		Name:  "admincli",
		Usage: "管理员账号维护工具",
		Commands: []*cli.Command{
			{
				Name:  "create-admin",
				Usage: "创建管理员账号",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "登录用户名", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "登录密码", Required: true},
				},
				Action: func(c *cli.Context) error {
					username := c.String("username")
					password := c.String("password")

					authSvc, err := buildAuthService()
					if err != nil {
						return err
					}

					err = authSvc.CreateAdmin(context.Background(), username, password)
					if errors.Is(err, service.ErrAdminExists) {
						fmt.Println(yellow("管理员已存在: " + username))
						return nil
					}
					if err != nil {
						return fmt.Errorf("创建失败: %w", err)
					}

					fmt.Println(green("管理员已创建: " + username))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(red(err.Error()))
	}
}

// buildAuthService 连库并组装认证服务
func buildAuthService() (*service.AuthService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.InitDB(cfg.DSN(), &model.Admin{}, &model.User{})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	return service.NewAuthService(
		repository.NewAdminRepository(db),
		repository.NewUserRepository(db),
	), nil
}
