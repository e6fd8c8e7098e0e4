// Package main Account Messenger API
//
// @title           Account Messenger API
// @version         1.0
// @description     API учётных записей с ограниченным сроком действия и ленты сообщений администратора
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:3000
// @BasePath  /api
package main

import "github.com/magabrotheeeer/account-messenger/internal/commands"

func main() {
	commands.Execute()
}
